package config

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/api/v1alpha2"
)

// Selection records one operator choice: the channel being mirrored,
// its minimum version, and optionally the catalog default channel when
// it differs from the selected channel. Selections are value types and
// are never mutated after creation.
type Selection struct {
	Operator string
	Channel  string
	Version  string
	// DefaultChannel is set when the catalog default channel differs
	// from Channel.
	DefaultChannel string
	// DefaultChannelVersion is the latest version of DefaultChannel at
	// selection time, when known.
	DefaultChannelVersion string
}

// Load parses raw YAML or JSON into an ImageSetConfiguration,
// verifying the document kind first.
func Load(data []byte) (v1alpha2.ImageSetConfiguration, error) {
	var cfg v1alpha2.ImageSetConfiguration

	typeMeta, err := getTypeMeta(data)
	if err != nil {
		return cfg, &MalformedConfigError{Reason: err.Error()}
	}
	if typeMeta.Kind != v1alpha2.ImageSetConfigurationKind {
		return cfg, &MalformedConfigError{
			Reason: fmt.Sprintf("kind %q is not %q", typeMeta.Kind, v1alpha2.ImageSetConfigurationKind),
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &MalformedConfigError{Reason: err.Error()}
	}
	return cfg, nil
}

// Parse extracts the catalog reference and the active selections from
// a loaded configuration. The first channel constraint of each package
// entry is the active selection; documents produced by this tool carry
// exactly one constraint per package unless a prior reconciliation
// appended a default channel.
func Parse(cfg v1alpha2.ImageSetConfiguration) (catalogRef string, selections []Selection, err error) {
	if len(cfg.Mirror.Operators) == 0 {
		return "", nil, &MalformedConfigError{Reason: "no operator catalog entries"}
	}

	ctlg := cfg.Mirror.Operators[0]
	if len(ctlg.Packages) == 0 {
		return "", nil, &MalformedConfigError{Reason: fmt.Sprintf("catalog %q has no package entries", ctlg.Catalog)}
	}

	for _, pkg := range ctlg.Packages {
		if len(pkg.Channels) == 0 {
			return "", nil, &MalformedConfigError{Reason: fmt.Sprintf("package %q has no channel constraints", pkg.Name)}
		}
		selections = append(selections, Selection{
			Operator:       pkg.Name,
			Channel:        pkg.Channels[0].Name,
			Version:        pkg.Channels[0].MinVersion,
			DefaultChannel: pkg.DefaultChannel,
		})
	}
	return ctlg.Catalog, selections, nil
}

func getTypeMeta(data []byte) (typeMeta metav1.TypeMeta, err error) {
	if err := yaml.Unmarshal(data, &typeMeta); err != nil {
		return typeMeta, fmt.Errorf("get type meta: %v", err)
	}
	return typeMeta, nil
}
