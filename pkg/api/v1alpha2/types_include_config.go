package v1alpha2

// IncludeConfig defines a list of packages for
// operator version selection.
type IncludeConfig struct {
	// Packages to include.
	Packages []IncludePackage `json:"packages" yaml:"packages"`
}

// IncludePackage contains a package name (required) and the channel
// constraints selected for it.
type IncludePackage struct {
	// Name of package.
	Name string `json:"name" yaml:"name"`
	// Channels to include.
	Channels []IncludeChannel `json:"channels,omitempty" yaml:"channels,omitempty"`
	// DefaultChannel references the catalog default channel when it is
	// not already listed in Channels. A package entry never carries both
	// this marker and a channel constraint of the same name.
	DefaultChannel string `json:"defaultChannel,omitempty" yaml:"defaultChannel,omitempty"`
}

// IncludeChannel contains a channel name (required) and the version
// constraint applied to it.
type IncludeChannel struct {
	// Name of channel.
	Name string `json:"name" yaml:"name"`

	IncludeBundle `json:",inline"`
}

// IncludeBundle contains the version constraints for a channel.
type IncludeBundle struct {
	// MinVersion to include, plus all versions in the upgrade graph to the channel head.
	MinVersion string `json:"minVersion,omitempty" yaml:"minVersion,omitempty"`
	// MaxVersion is accepted on input for compatibility with older
	// configurations. The viewer only expresses minimum-version
	// constraints and drops this field when an entry is updated.
	MaxVersion string `json:"maxVersion,omitempty" yaml:"maxVersion,omitempty"`
}
