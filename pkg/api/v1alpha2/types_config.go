package v1alpha2

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ImageSetConfiguration object kind.
const ImageSetConfigurationKind = "ImageSetConfiguration"

// ImageSetConfiguration configures image set creation.
type ImageSetConfiguration struct {
	metav1.TypeMeta `json:",inline"`
	// ImageSetConfigurationSpec defines the global configuration for an imageset.
	ImageSetConfigurationSpec `json:",inline"`
}

// ImageSetConfigurationSpec defines the global configuration for an imageset.
type ImageSetConfigurationSpec struct {
	// Mirror defines the configuration for content types within the imageset.
	Mirror Mirror `json:"mirror"`
}

// Mirror defines the configuration for content types within the imageset.
type Mirror struct {
	// Operators defines the configuration for Operator content types.
	Operators []Operator `json:"operators,omitempty"`
}

// Operator defines the configuration for operator catalog mirroring.
type Operator struct {
	// Mirror specific operator packages, channels, and versions.
	IncludeConfig `json:",inline"`

	// Catalog image to mirror. This image should be an exact image pin
	// (registry/namespace/name@sha256:<hash>) but is not required to be.
	Catalog string `json:"catalog"`
}
