package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/catalog"
)

type ListOptions struct {
	*RootOptions
	Catalog    string
	CatalogDir string
	Package    string
	Channel    string
}

func NewListCommand(ro *RootOptions) *cobra.Command {
	o := ListOptions{RootOptions: ro}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages, channels, and versions in an operator catalog",
		Example: `  # List all packages in a catalog image
  catalogs-viewer list --catalog=registry.redhat.io/redhat/redhat-operator-index:v4.12

  # List channels and versions for one package
  catalogs-viewer list --catalog=catalog-ref --package=package-name

  # List versions in one channel
  catalogs-viewer list --catalog=catalog-ref --package=package-name --channel=channel-name

  # Inspect an already-extracted catalog tree
  catalogs-viewer list --catalog-dir=path/to/configs --package=package-name`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.Catalog, "catalog", o.Catalog, "Catalog image reference to inspect")
	fs.StringVar(&o.CatalogDir, "catalog-dir", o.CatalogDir, "Local catalog tree to inspect instead of pulling an image")
	fs.StringVar(&o.Package, "package", o.Package, "Limit output to a single package")
	fs.StringVar(&o.Channel, "channel", o.Channel, "Limit output to a single channel, requires --package")

	return cmd
}

func (o *ListOptions) Validate() error {
	if o.Catalog == "" && o.CatalogDir == "" {
		return errors.New("must specify --catalog or --catalog-dir")
	}
	if o.Catalog != "" && o.CatalogDir != "" {
		return errors.New("--catalog and --catalog-dir are mutually exclusive")
	}
	if o.Channel != "" && o.Package == "" {
		return errors.New("must specify --package with --channel")
	}
	return nil
}

func (o *ListOptions) Run(cmd *cobra.Command) error {
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
	if len(res.Skipped) > 0 {
		sink.Line("skipped %d unparsable catalog file(s) or span(s)", len(res.Skipped))
	}

	byPkg := catalog.SplitByPackage(res.Objects)
	if o.Package != "" {
		objs, ok := byPkg[o.Package]
		if !ok {
			return fmt.Errorf("package %q not found in catalog", o.Package)
		}
		return o.printPackage(o.Package, catalog.BuildGraph(objs))
	}

	names := make([]string, 0, len(byPkg))
	for name := range byPkg {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(o.IOStreams.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tDEFAULT CHANNEL\tCHANNELS")
	for _, name := range names {
		g := catalog.BuildGraph(byPkg[name])
		channels := make([]string, 0, len(g.Channels))
		for _, ch := range g.Channels {
			channels = append(channels, ch.Name)
		}
		defaultChannel := g.DefaultChannel
		if defaultChannel != "" && !g.DefaultChannelExplicit {
			defaultChannel += " (fallback)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, defaultChannel, strings.Join(channels, ","))
	}
	return w.Flush()
}

func (o *ListOptions) printPackage(name string, g catalog.Graph) error {
	if o.Channel != "" {
		ch, ok := g.Channel(o.Channel)
		if !ok {
			return fmt.Errorf("channel %q not found in package %q", o.Channel, name)
		}
		fmt.Fprintln(o.IOStreams.Out, "VERSIONS")
		for _, v := range ch.Versions {
			fmt.Fprintln(o.IOStreams.Out, v)
		}
		return nil
	}

	w := tabwriter.NewWriter(o.IOStreams.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tLATEST\tVERSIONS")
	for _, ch := range g.Channels {
		chName := ch.Name
		if chName == g.DefaultChannel {
			chName += " (default)"
		}
		latest := ""
		if len(ch.Versions) > 0 {
			latest = ch.Versions[0]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", chName, latest, strings.Join(ch.Versions, ","))
	}
	return w.Flush()
}
