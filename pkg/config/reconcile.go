package config

import (
	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/api/v1alpha2"
	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/catalog"
)

// DefaultChannelAction selects how the reconciler treats a package
// whose catalog default channel is not the configured channel. The
// three choices are mutually exclusive, so they are a closed
// enumeration rather than independent flags.
type DefaultChannelAction int

const (
	// DefaultChannelNone keeps the existing constraint and records the
	// resolved default through the defaultChannel marker.
	DefaultChannelNone DefaultChannelAction = iota
	// DefaultChannelAdd appends the default channel as an additional
	// constraint at its latest version.
	DefaultChannelAdd
	// DefaultChannelReplace replaces the entire constraint list with a
	// single entry for the default channel.
	DefaultChannelReplace
)

// Request describes the caller-selected actions for one operator.
type Request struct {
	// Update moves the constraint's minVersion to the channel's latest
	// version when a newer one is available.
	Update bool
	// ReplaceChannel names the substitute channel to use when the
	// configured channel no longer exists in the catalog.
	ReplaceChannel string
	// DefaultChannel selects the default-channel reconciliation policy.
	DefaultChannel DefaultChannelAction
	// Remove strips the package entry from the output.
	Remove bool
}

// Result reports per-operator outcomes of one reconciliation run.
// Problems collects per-operator errors; the batch itself never aborts
// for them.
type Result struct {
	// Removed lists operators stripped from the output, either by
	// request or because the rebuilt catalog no longer carries them.
	Removed []string
	// Updated lists operators whose minVersion moved forward.
	Updated []string
	// ChannelsReplaced lists operators whose constraint was rewritten
	// to a substitute channel.
	ChannelsReplaced []string
	// Problems holds per-operator reconciliation errors, currently
	// ChannelNotFoundError values.
	Problems []error
}

// Reconcile recomputes a configuration from the current document,
// freshly rebuilt per-operator graphs, and per-operator requests. The
// input document is never mutated: the result is a complete new
// document or an error, never a half-rewritten one.
func Reconcile(cfg v1alpha2.ImageSetConfiguration, graphs map[string]catalog.Graph, reqs map[string]Request) (v1alpha2.ImageSetConfiguration, Result, error) {
	var res Result
	if len(cfg.Mirror.Operators) == 0 {
		return cfg, res, &MalformedConfigError{Reason: "no operator catalog entries"}
	}

	ctlg := cfg.Mirror.Operators[0]
	newPkgs := make([]v1alpha2.IncludePackage, 0, len(ctlg.Packages))
	for _, pkg := range ctlg.Packages {
		req := reqs[pkg.Name]
		g, ok := graphs[pkg.Name]
		if req.Remove || !ok || g.Empty() {
			res.Removed = append(res.Removed, pkg.Name)
			continue
		}
		newPkgs = append(newPkgs, reconcilePackage(pkg, g, req, &res))
	}

	// Invariant pass: a package entry never carries both a
	// defaultChannel marker and a constraint of the same name. This
	// runs over every entry regardless of which action path produced it.
	for i := range newPkgs {
		enforceMarkerInvariant(&newPkgs[i])
	}

	// Entries left with no constraints cannot express a selection;
	// dropping them keeps the output structurally valid.
	kept := newPkgs[:0]
	for _, pkg := range newPkgs {
		if len(pkg.Channels) == 0 {
			res.Removed = append(res.Removed, pkg.Name)
			continue
		}
		kept = append(kept, pkg)
	}

	ctlg.Packages = kept
	out := cfg
	out.Mirror.Operators = append([]v1alpha2.Operator(nil), cfg.Mirror.Operators...)
	out.Mirror.Operators[0] = ctlg
	return out, res, nil
}

// reconcilePackage applies one operator's requested actions. The
// returned package owns its own constraint slice; the input is left
// untouched.
func reconcilePackage(pkg v1alpha2.IncludePackage, g catalog.Graph, req Request, res *Result) v1alpha2.IncludePackage {
	pkg.Channels = append([]v1alpha2.IncludeChannel(nil), pkg.Channels...)
	if len(pkg.Channels) == 0 {
		return pkg
	}

	current := &pkg.Channels[0]
	if _, ok := g.Channel(current.Name); !ok {
		if req.ReplaceChannel == "" {
			res.Problems = append(res.Problems, &ChannelNotFoundError{Operator: pkg.Name, Channel: current.Name})
			return pkg
		}
		latest, ok := g.Latest(req.ReplaceChannel)
		if !ok {
			res.Problems = append(res.Problems, &ChannelNotFoundError{Operator: pkg.Name, Channel: req.ReplaceChannel})
			return pkg
		}
		current.Name = req.ReplaceChannel
		current.MinVersion = latest
		current.MaxVersion = ""
		res.ChannelsReplaced = append(res.ChannelsReplaced, pkg.Name)
	} else if req.Update {
		if latest, ok := g.Latest(current.Name); ok && catalog.NewerVersion(current.MinVersion, latest) {
			current.MinVersion = latest
			// Only minimum-version constraints are expressed; a legacy
			// maxVersion would pin the entry below the new minimum.
			current.MaxVersion = ""
			res.Updated = append(res.Updated, pkg.Name)
		}
	}

	applyDefaultChannelAction(&pkg, g, req.DefaultChannel)
	return pkg
}

func applyDefaultChannelAction(pkg *v1alpha2.IncludePackage, g catalog.Graph, action DefaultChannelAction) {
	dc := g.DefaultChannel
	if dc == "" || hasConstraint(*pkg, dc) {
		return
	}

	switch action {
	case DefaultChannelAdd:
		latest, ok := g.Latest(dc)
		if !ok {
			return
		}
		// The default channel becomes an explicit constraint, so the
		// marker stays unset.
		pkg.Channels = append(pkg.Channels, v1alpha2.IncludeChannel{
			Name:          dc,
			IncludeBundle: v1alpha2.IncludeBundle{MinVersion: latest},
		})
	case DefaultChannelReplace:
		latest, ok := g.Latest(dc)
		if !ok {
			return
		}
		pkg.Channels = []v1alpha2.IncludeChannel{
			{
				Name:          dc,
				IncludeBundle: v1alpha2.IncludeBundle{MinVersion: latest},
			},
		}
	case DefaultChannelNone:
		pkg.DefaultChannel = dc
	}
}

func hasConstraint(pkg v1alpha2.IncludePackage, channelName string) bool {
	for _, ch := range pkg.Channels {
		if ch.Name == channelName {
			return true
		}
	}
	return false
}

func enforceMarkerInvariant(pkg *v1alpha2.IncludePackage) {
	if pkg.DefaultChannel == "" {
		return
	}
	if hasConstraint(*pkg, pkg.DefaultChannel) {
		pkg.DefaultChannel = ""
	}
}
