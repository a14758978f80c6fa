package config

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/api/v1alpha2"
)

type validationFunc func(cfg *v1alpha2.ImageSetConfiguration) error

var validationChecks = []validationFunc{validateOperatorCatalogs, validateUniquePackages}

// Validate runs every structural check against a loaded configuration
// and aggregates the failures.
func Validate(cfg *v1alpha2.ImageSetConfiguration) error {
	var errs []error
	for _, check := range validationChecks {
		if err := check(cfg); err != nil {
			errs = append(errs, fmt.Errorf("invalid configuration: %v", err))
		}
	}
	return utilerrors.NewAggregate(errs)
}

func validateOperatorCatalogs(cfg *v1alpha2.ImageSetConfiguration) error {
	for _, ctlg := range cfg.Mirror.Operators {
		if ctlg.Catalog == "" {
			return fmt.Errorf("operator catalog entries require a catalog image reference")
		}
	}
	return nil
}

func validateUniquePackages(cfg *v1alpha2.ImageSetConfiguration) error {
	for _, ctlg := range cfg.Mirror.Operators {
		seen := map[string]bool{}
		for _, pkg := range ctlg.Packages {
			if seen[pkg.Name] {
				return fmt.Errorf("catalog %q: duplicate package %q found in configuration", ctlg.Catalog, pkg.Name)
			}
			seen[pkg.Name] = true
		}
	}
	return nil
}
