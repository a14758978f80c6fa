package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

type RootOptions struct {
	genericclioptions.IOStreams

	// Dir is the workspace catalog trees are extracted into.
	Dir string
	// CacheDir holds previously extracted catalog trees, keyed by
	// catalog reference and version.
	CacheDir string
	// SkipCache forces a fresh pull even when a cached tree exists.
	SkipCache bool
	LogLevel  string
}

func (o *RootOptions) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Dir, "dir", "d", "catalogs-viewer-workspace", "Assets directory")
	fs.StringVar(&o.CacheDir, "cache-dir", "catalogs-viewer-cache", "Directory for cached catalog trees")
	fs.BoolVar(&o.SkipCache, "skip-cache", o.SkipCache, "Pull the catalog image even when a cached tree exists")
	fs.StringVar(&o.LogLevel, "log-level", "info", "Log level (e.g. \"debug | info | warn | error\")")
}

func (o *RootOptions) LogPreRun(*cobra.Command, []string) {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		logrus.Fatalf("parse root options log-level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(o.IOStreams.ErrOut)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		DisableQuote:           true,
	})
}
