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

type UpdateOptions struct {
	*RootOptions
	ConfigPath string
	CatalogDir string
	Output     string

	UpdateAll       bool
	Update          []string
	ReplaceChannels []string
	AddDefault      []string
	ReplaceDefault  []string
	Remove          []string
}

func NewUpdateCommand(ro *RootOptions) *cobra.Command {
	o := UpdateOptions{RootOptions: ro}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Reconcile an ImageSetConfiguration against the current catalog",
		Long: `Reconcile an existing ImageSetConfiguration against the catalog it
mirrors from. Packages that disappeared from the catalog are removed,
constraint versions are optionally moved to the channel's latest, and
default-channel drift is recorded or resolved per operator.`,
		Example: `  # Move every operator's minVersion to its channel's latest
  catalogs-viewer update --config=imageset-config.yaml --update-all

  # Replace a retired channel and adopt the new default channel
  catalogs-viewer update --config=imageset-config.yaml \
    --replace-channel=aws-load-balancer-operator=stable-v1 \
    --replace-with-default-channel=node-observability-operator`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&o.ConfigPath, "config", "c", o.ConfigPath, "Path to the ImageSetConfiguration to reconcile")
	fs.StringVar(&o.CatalogDir, "catalog-dir", o.CatalogDir, "Local catalog tree to reconcile against instead of pulling")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Write the reconciled configuration here instead of back to --config")
	fs.BoolVar(&o.UpdateAll, "update-all", o.UpdateAll, "Move every operator's minVersion to its channel's latest version")
	fs.StringArrayVar(&o.Update, "update", o.Update, "Operator whose minVersion moves to its channel's latest version, repeatable")
	fs.StringArrayVar(&o.ReplaceChannels, "replace-channel", o.ReplaceChannels, "operator=channel substitution used when the configured channel is gone, repeatable")
	fs.StringArrayVar(&o.AddDefault, "add-default-channel", o.AddDefault, "Operator that gains the catalog default channel as an extra constraint, repeatable")
	fs.StringArrayVar(&o.ReplaceDefault, "replace-with-default-channel", o.ReplaceDefault, "Operator whose constraints are replaced by the catalog default channel, repeatable")
	fs.StringArrayVar(&o.Remove, "remove", o.Remove, "Operator to strip from the configuration, repeatable")

	return cmd
}

func (o *UpdateOptions) Validate() error {
	if o.ConfigPath == "" {
		return errors.New("must specify --config")
	}
	for _, rc := range o.ReplaceChannels {
		if len(strings.SplitN(rc, "=", 2)) != 2 {
			return fmt.Errorf("replacement %q must have the form operator=channel", rc)
		}
	}
	added := make(map[string]struct{}, len(o.AddDefault))
	for _, op := range o.AddDefault {
		added[op] = struct{}{}
	}
	for _, op := range o.ReplaceDefault {
		if _, ok := added[op]; ok {
			return fmt.Errorf("operator %q requests both --add-default-channel and --replace-with-default-channel", op)
		}
	}
	return nil
}

func (o *UpdateOptions) Run(cmd *cobra.Command) error {
	// Progress lines stream through the session-stamped sink; the
	// outcome report prints plainly to stdout.
	progress := NewLogrusSink()
	report := NewWriterSink(o.IOStreams.Out)

	data, err := os.ReadFile(o.ConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(data)
	if err != nil {
		return err
	}
	catalogRef, selections, err := config.Parse(cfg)
	if err != nil {
		return err
	}

	dir := o.CatalogDir
	if dir == "" {
		dir, err = o.catalogTree(cmd.Context(), catalogRef, progress)
		if err != nil {
			return err
		}
	}

	res, err := catalog.NewDecoder(nil).Load(dir)
	if err != nil {
		return err
	}
	if n := len(res.Skipped); n > 0 {
		progress.Line("skipped %d undecodable catalog file(s)", n)
	}
	byPkg := catalog.SplitByPackage(res.Objects)

	graphs := make(map[string]catalog.Graph, len(selections))
	for _, sel := range selections {
		if objs, ok := byPkg[sel.Operator]; ok {
			graphs[sel.Operator] = catalog.BuildGraph(objs)
		}
	}

	reqs := o.requests()
	if o.UpdateAll {
		reqs = o.updateAllRequests(reqs, selections)
	}

	out, result, err := config.Reconcile(cfg, graphs, reqs)
	if err != nil {
		return err
	}
	if err := config.Validate(&out); err != nil {
		return err
	}

	raw, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	target := o.Output
	if target == "" {
		target = o.ConfigPath
	}
	if err := os.WriteFile(target, raw, 0644); err != nil {
		return err
	}

	o.report(report, result, target)
	return nil
}

// requests folds the per-operator action flags into reconciliation
// requests.
func (o *UpdateOptions) requests() map[string]config.Request {
	reqs := make(map[string]config.Request)
	get := func(op string) config.Request { return reqs[op] }

	for _, op := range o.Update {
		req := get(op)
		req.Update = true
		reqs[op] = req
	}
	for _, rc := range o.ReplaceChannels {
		parts := strings.SplitN(rc, "=", 2)
		req := get(parts[0])
		req.ReplaceChannel = parts[1]
		reqs[parts[0]] = req
	}
	for _, op := range o.AddDefault {
		req := get(op)
		req.DefaultChannel = config.DefaultChannelAdd
		reqs[op] = req
	}
	for _, op := range o.ReplaceDefault {
		req := get(op)
		req.DefaultChannel = config.DefaultChannelReplace
		reqs[op] = req
	}
	for _, op := range o.Remove {
		req := get(op)
		req.Remove = true
		reqs[op] = req
	}
	return reqs
}

// updateAllRequests rewrites the request map so every named operator
// carries Update, preserving any other requested actions.
func (o *UpdateOptions) updateAllRequests(reqs map[string]config.Request, selections []config.Selection) map[string]config.Request {
	for _, sel := range selections {
		req := reqs[sel.Operator]
		req.Update = true
		reqs[sel.Operator] = req
	}
	return reqs
}

func (o *UpdateOptions) report(sink LineSink, result config.Result, target string) {
	for _, op := range result.Updated {
		sink.Line("updated %s to its channel's latest version", op)
	}
	for _, op := range result.ChannelsReplaced {
		sink.Line("replaced channel constraint for %s", op)
	}
	for _, op := range result.Removed {
		sink.Line("removed %s", op)
	}
	for _, p := range result.Problems {
		sink.Line("problem: %v", p)
	}
	sink.Line("wrote reconciled configuration to %s", target)
}
