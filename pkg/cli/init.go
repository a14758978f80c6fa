package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/catalog"
	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/config"
)

type InitOptions struct {
	*RootOptions
	Catalog    string
	CatalogDir string
	Packages   []string
	Output     string
}

func NewInitCommand(ro *RootOptions) *cobra.Command {
	o := InitOptions{RootOptions: ro}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an ImageSetConfiguration from operator selections",
		Example: `  # Select a package at a version in a channel
  catalogs-viewer init --catalog=catalog-ref --package=aws-load-balancer-operator:stable-v0.2:0.2.0 -o imageset-config.yaml

  # Selections resolve their default channel from the catalog; pass
  # --catalog-dir to resolve against an already-extracted tree
  catalogs-viewer init --catalog-dir=path/to/configs --catalog=catalog-ref --package=foo:beta:1.0.0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.Catalog, "catalog", o.Catalog, "Catalog image reference the configuration mirrors from")
	fs.StringVar(&o.CatalogDir, "catalog-dir", o.CatalogDir, "Local catalog tree to resolve default channels against instead of pulling")
	fs.StringArrayVar(&o.Packages, "package", o.Packages, "Selection in the form name:channel:minVersion, repeatable")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Write the configuration to this file instead of stdout")

	return cmd
}

func (o *InitOptions) Validate() error {
	if o.Catalog == "" {
		return errors.New("must specify --catalog")
	}
	if len(o.Packages) == 0 {
		return errors.New("must specify at least one --package selection")
	}
	for _, p := range o.Packages {
		if len(strings.Split(p, ":")) != 3 {
			return fmt.Errorf("selection %q must have the form name:channel:minVersion", p)
		}
	}
	return nil
}

func (o *InitOptions) Run(cmd *cobra.Command) error {
	sink := NewLogrusSink()

	dir := o.CatalogDir
	if dir == "" {
		var err error
		dir, err = o.catalogTree(cmd.Context(), o.Catalog, sink)
		if err != nil {
			return err
		}
	}

	res, err := catalog.NewDecoder(nil).Load(dir)
	if err != nil {
		return err
	}
	byPkg := catalog.SplitByPackage(res.Objects)

	selections := make([]config.Selection, 0, len(o.Packages))
	for _, p := range o.Packages {
		parts := strings.Split(p, ":")
		sel := config.Selection{Operator: parts[0], Channel: parts[1], Version: parts[2]}

		objs, ok := byPkg[sel.Operator]
		if !ok {
			return fmt.Errorf("package %q not found in catalog", sel.Operator)
		}
		g := catalog.BuildGraph(objs)
		if _, ok := g.Channel(sel.Channel); !ok {
			return fmt.Errorf("package %q has no channel %q", sel.Operator, sel.Channel)
		}
		sel.DefaultChannel = g.DefaultChannel
		if v, ok := g.DefaultLatest(); ok {
			sel.DefaultChannelVersion = v
		}
		selections = append(selections, sel)
	}

	cfg := config.Synthesize(o.Catalog, selections)
	if err := config.Validate(&cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if o.Output == "" {
		_, err = o.IOStreams.Out.Write(data)
		return err
	}
	if err := os.WriteFile(o.Output, data, 0644); err != nil {
		return err
	}
	sink.Line("wrote configuration with %d package(s) to %s", len(selections), o.Output)
	return nil
}
