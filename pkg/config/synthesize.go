package config

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/api/v1alpha2"
)

// Synthesize builds a new ImageSetConfiguration from a catalog
// reference and a list of selections. Package order follows selection
// order so successive generations diff cleanly; callers must not
// resort the output.
func Synthesize(catalogRef string, selections []Selection) v1alpha2.ImageSetConfiguration {
	pkgs := make([]v1alpha2.IncludePackage, 0, len(selections))
	for _, sel := range selections {
		pkg := v1alpha2.IncludePackage{
			Name: sel.Operator,
			Channels: []v1alpha2.IncludeChannel{
				{
					Name:          sel.Channel,
					IncludeBundle: v1alpha2.IncludeBundle{MinVersion: sel.Version},
				},
			},
		}
		// The marker only references a default channel that is not
		// already constrained; when the selection targets the default
		// channel itself the marker would be redundant.
		if sel.DefaultChannel != "" && sel.DefaultChannel != sel.Channel {
			pkg.DefaultChannel = sel.DefaultChannel
		}
		pkgs = append(pkgs, pkg)
	}

	return v1alpha2.ImageSetConfiguration{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha2.GroupVersion.String(),
			Kind:       v1alpha2.ImageSetConfigurationKind,
		},
		ImageSetConfigurationSpec: v1alpha2.ImageSetConfigurationSpec{
			Mirror: v1alpha2.Mirror{
				Operators: []v1alpha2.Operator{
					{
						Catalog:       catalogRef,
						IncludeConfig: v1alpha2.IncludeConfig{Packages: pkgs},
					},
				},
			},
		},
	}
}
