package catalog

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Graph is the resolved view of one operator package: its channels
// with descending version lists and the effective default channel.
type Graph struct {
	// DefaultChannel is the effective default channel. When package
	// metadata declares none, this falls back to the first channel
	// discovered; DefaultChannelExplicit distinguishes the two cases.
	DefaultChannel string
	// DefaultChannelExplicit reports whether DefaultChannel came from
	// an olm.package object rather than the first-channel fallback.
	DefaultChannelExplicit bool
	// Channels holds each channel's versions sorted descending with
	// duplicates removed, in channel discovery order.
	Channels []ChannelVersions
}

// ChannelVersions is one channel's resolved version list.
type ChannelVersions struct {
	Name string
	// Versions is sorted descending under the numeric-aware comparator,
	// so Versions[0] is the effective latest.
	Versions []string
}

// Channel returns the named channel's version list.
func (g Graph) Channel(name string) (ChannelVersions, bool) {
	for _, ch := range g.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return ChannelVersions{}, false
}

// Latest returns the newest version in the named channel, or false if
// the channel is absent or empty.
func (g Graph) Latest(channelName string) (string, bool) {
	ch, ok := g.Channel(channelName)
	if !ok || len(ch.Versions) == 0 {
		return "", false
	}
	return ch.Versions[0], true
}

// DefaultLatest returns the newest version in the default channel.
func (g Graph) DefaultLatest() (string, bool) {
	if g.DefaultChannel == "" {
		return "", false
	}
	return g.Latest(g.DefaultChannel)
}

// Empty reports whether the graph holds no channel data at all, which
// callers treat as the operator being absent from the catalog.
func (g Graph) Empty() bool {
	return len(g.Channels) == 0
}

// BuildGraph resolves a decoded object sequence into a Graph. Objects
// that fail to decode into their typed form are dropped individually;
// a malformed bundle never aborts the build.
func BuildGraph(objs []Meta) Graph {
	var g Graph

	// The first olm.package object seeds the default channel.
	for _, o := range objs {
		if o.Schema != SchemaPackage {
			continue
		}
		pkg, err := o.AsPackage()
		if err != nil {
			logrus.Debugf("dropping malformed package object %q: %v", o.Name, err)
			continue
		}
		if pkg.DefaultChannel != "" {
			g.DefaultChannel = pkg.DefaultChannel
			g.DefaultChannelExplicit = true
		}
		break
	}

	// Bundle name to version. A bundle without an olm.package property
	// stays unresolved and its name doubles as a version surrogate.
	versionByBundle := make(map[string]string)
	for _, o := range objs {
		if o.Schema != SchemaBundle {
			continue
		}
		b, err := o.AsBundle()
		if err != nil {
			logrus.Debugf("dropping malformed bundle object %q: %v", o.Name, err)
			continue
		}
		if v, ok := b.Version(); ok {
			versionByBundle[b.Name] = v
		}
	}

	chIndex := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	for _, o := range objs {
		if o.Schema != SchemaChannel {
			continue
		}
		ch, err := o.AsChannel()
		if err != nil {
			logrus.Debugf("dropping malformed channel object %q: %v", o.Name, err)
			continue
		}
		idx, ok := chIndex[ch.Name]
		if !ok {
			idx = len(g.Channels)
			chIndex[ch.Name] = idx
			g.Channels = append(g.Channels, ChannelVersions{Name: ch.Name})
			seen[ch.Name] = make(map[string]struct{})
		}
		for _, entry := range ch.Entries {
			version, ok := versionByBundle[entry.Name]
			if !ok {
				version = entry.Name
			}
			if _, dup := seen[ch.Name][version]; dup {
				continue
			}
			seen[ch.Name][version] = struct{}{}
			g.Channels[idx].Versions = append(g.Channels[idx].Versions, version)
		}
	}

	for i := range g.Channels {
		versions := g.Channels[i].Versions
		sort.SliceStable(versions, func(a, b int) bool {
			return Compare(versions[a], versions[b]) > 0
		})
	}

	if g.DefaultChannel == "" && len(g.Channels) > 0 {
		// No package metadata declared a default. Falling back to the
		// first channel discovered is a documented policy, not a
		// property of the catalog format.
		g.DefaultChannel = g.Channels[0].Name
		logrus.Debugf("no default channel declared; falling back to first channel %q", g.DefaultChannel)
	}

	return g
}
