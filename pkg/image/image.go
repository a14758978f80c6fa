// Package image fetches the file-based catalog tree out of a catalog
// container image. The core engines never reach the network themselves;
// they consume the local directory a Fetcher returns.
package image

import (
	"context"
	"errors"
	"strings"
)

// ConfigDirLabel is the label catalog images carry to name the
// directory containing the catalog configuration.
const ConfigDirLabel = "operators.operatorframework.io.index.configs.v1"

// ErrNoRuntimeAvailable is returned when neither podman nor docker can
// be found on the host.
var ErrNoRuntimeAvailable = errors.New("no container runtime (podman or docker) available")

// Fetcher retrieves the file-based catalog tree for an image
// reference, returning the local directory the catalog files were
// extracted to. Transport and authorization failures are returned
// as-is; retry policy belongs to the caller.
type Fetcher interface {
	FetchCatalogFiles(ctx context.Context, imageRef string) (string, error)
}

// Spec is the decomposed form of a catalog image reference.
type Spec struct {
	Reference string
	Name      string
	Tag       string
	Digest    string
}

// ParseRef decomposes an image reference of the form
// name[:tag][@digest]. It is deliberately permissive: the reference is
// handed to the container runtime verbatim, the parts here only feed
// cache keys and display.
func ParseRef(imageRef string) Spec {
	spec := Spec{Reference: imageRef, Name: imageRef}

	if idx := strings.Index(spec.Name, "@"); idx >= 0 {
		spec.Digest = spec.Name[idx+1:]
		spec.Name = spec.Name[:idx]
	}

	lastColon := strings.LastIndex(spec.Name, ":")
	firstSlash := strings.Index(spec.Name, "/")
	if lastColon >= 0 && lastColon > firstSlash {
		spec.Tag = spec.Name[lastColon+1:]
		spec.Name = spec.Name[:lastColon]
	}
	return spec
}

// Version returns the most specific version identifier available for
// cache keying: the digest when pinned, else the tag, else "latest".
func (s Spec) Version() string {
	switch {
	case s.Digest != "":
		return s.Digest
	case s.Tag != "":
		return s.Tag
	}
	return "latest"
}
