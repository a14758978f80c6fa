package cli

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/cache"
	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/image"
)

// NewViewerCommand builds the catalogs-viewer root command.
func NewViewerCommand() *cobra.Command {
	o := &RootOptions{
		IOStreams: genericclioptions.IOStreams{
			In:     os.Stdin,
			Out:    os.Stdout,
			ErrOut: os.Stderr,
		},
	}

	cmd := &cobra.Command{
		Use:              "catalogs-viewer",
		Short:            "Discover operator catalog content and maintain ImageSetConfiguration files",
		PersistentPreRun: o.LogPreRun,
		SilenceErrors:    true,
		SilenceUsage:     true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	o.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewListCommand(o))
	cmd.AddCommand(NewInitCommand(o))
	cmd.AddCommand(NewUpdateCommand(o))

	return cmd
}

// catalogTree resolves the local directory holding a catalog's files,
// consulting the advisory cache before pulling the image. Cached trees
// are always re-parsed by the caller; only the extraction is skipped.
func (o *RootOptions) catalogTree(ctx context.Context, catalogRef string, sink LineSink) (string, error) {
	spec := image.ParseRef(catalogRef)
	key, err := cache.Key(spec.Name, spec.Version())
	if err != nil {
		return "", err
	}

	c, err := cache.New(nil, o.CacheDir)
	if err != nil {
		return "", err
	}
	if !o.SkipCache && c.Has(key) {
		sink.Line("using cached catalog tree for %s", catalogRef)
		return c.Path(key), nil
	}

	fetcher, err := image.NewCLIFetcher(o.Dir)
	if err != nil {
		return "", err
	}
	dir, err := fetcher.FetchCatalogFiles(ctx, catalogRef)
	if err != nil {
		return "", err
	}
	// Cache writes are advisory; a failed store never fails the run.
	if err := c.Store(key, dir); err != nil {
		logrus.Warnf("caching catalog tree for %s: %v", catalogRef, err)
	}
	return dir, nil
}
