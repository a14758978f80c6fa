package catalog

import (
	"encoding/json"
	"fmt"
)

// Schema discriminators recognized in file-based catalog objects.
// Objects carrying any other schema are retained as Meta values but
// ignored by the graph builder.
const (
	SchemaPackage = "olm.package"
	SchemaChannel = "olm.channel"
	SchemaBundle  = "olm.bundle"
)

// PropertyTypePackage identifies the bundle property holding the
// package name and version of a bundle.
const PropertyTypePackage = "olm.package"

// Meta is a single object read from a catalog directory, tagged by its
// schema discriminator. Blob retains the raw JSON so the graph builder
// can decode it into one of the typed variants below.
type Meta struct {
	Schema  string
	Package string
	Name    string
	Blob    json.RawMessage
}

// Package is the typed form of an olm.package object.
type Package struct {
	Schema         string `json:"schema"`
	Name           string `json:"name"`
	DefaultChannel string `json:"defaultChannel,omitempty"`
}

// Channel is the typed form of an olm.channel object.
type Channel struct {
	Schema  string         `json:"schema"`
	Name    string         `json:"name"`
	Package string         `json:"package,omitempty"`
	Entries []ChannelEntry `json:"entries,omitempty"`
}

// ChannelEntry references one bundle within a channel.
type ChannelEntry struct {
	Name     string   `json:"name"`
	Replaces string   `json:"replaces,omitempty"`
	Skips    []string `json:"skips,omitempty"`
}

// Bundle is the typed form of an olm.bundle object.
type Bundle struct {
	Schema     string     `json:"schema"`
	Name       string     `json:"name"`
	Package    string     `json:"package,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// Property is one entry of a bundle's properties list. Value is kept
// raw because property payloads vary by type.
type Property struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// packageProperty is the payload of a PropertyTypePackage property.
type packageProperty struct {
	PackageName string `json:"packageName"`
	Version     string `json:"version"`
}

// Version returns the bundle version declared by the olm.package
// property, or false when the bundle carries no parsable version.
func (b Bundle) Version() (string, bool) {
	for _, p := range b.Properties {
		if p.Type != PropertyTypePackage {
			continue
		}
		var pkg packageProperty
		if err := json.Unmarshal(p.Value, &pkg); err != nil {
			continue
		}
		if pkg.Version != "" {
			return pkg.Version, true
		}
	}
	return "", false
}

// newMeta builds a Meta from a raw JSON value. Values that are not
// objects, or objects without a schema field, are kept with an empty
// schema so callers can account for them.
func newMeta(blob json.RawMessage) Meta {
	var probe struct {
		Schema  string `json:"schema"`
		Package string `json:"package"`
		Name    string `json:"name"`
	}
	// A failed probe leaves the discriminators empty, which marks the
	// object as unrecognized.
	_ = json.Unmarshal(blob, &probe)
	return Meta{
		Schema:  probe.Schema,
		Package: probe.Package,
		Name:    probe.Name,
		Blob:    blob,
	}
}

// AsPackage decodes the object as an olm.package.
func (m Meta) AsPackage() (Package, error) {
	var p Package
	if m.Schema != SchemaPackage {
		return p, fmt.Errorf("object %q is not an %s object", m.Name, SchemaPackage)
	}
	return p, json.Unmarshal(m.Blob, &p)
}

// AsChannel decodes the object as an olm.channel.
func (m Meta) AsChannel() (Channel, error) {
	var c Channel
	if m.Schema != SchemaChannel {
		return c, fmt.Errorf("object %q is not an %s object", m.Name, SchemaChannel)
	}
	return c, json.Unmarshal(m.Blob, &c)
}

// AsBundle decodes the object as an olm.bundle.
func (m Meta) AsBundle() (Bundle, error) {
	var b Bundle
	if m.Schema != SchemaBundle {
		return b, fmt.Errorf("object %q is not an %s object", m.Name, SchemaBundle)
	}
	return b, json.Unmarshal(m.Blob, &b)
}
