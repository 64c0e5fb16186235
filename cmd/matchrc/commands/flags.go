package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/matchrc/cmd/matchrc/opts"
	"github.com/walteh/matchrc/pkg/config"
	"github.com/walteh/matchrc/pkg/plan"
	"github.com/walteh/matchrc/pkg/rename"
	"github.com/walteh/matchrc/pkg/similarity"
	"gitlab.com/tozd/go/errors"
)

// matchFlags holds the per-command flags that overlay the config file.
type matchFlags struct {
	sources          string
	choices          string
	choicesRepo      string
	choicesRef       string
	choicesPath      string
	algorithm        string
	threshold        float64
	keepExtension    bool
	side             string
	includeUnmatched bool
	ignore           []string
	overrides        []string
	noMatches        []string
	interactive      bool
}

// addMatchFlags registers the flags shared by plan, copy and rename.
func addMatchFlags(cmd *cobra.Command, f *matchFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.sources, "sources", "", "directory of files to act on")
	flags.StringVar(&f.choices, "choices", "", "directory of reference names")
	flags.StringVar(&f.choicesRepo, "choices-repo", "", "owner/name of a reference repository")
	flags.StringVar(&f.choicesRef, "choices-ref", "", "branch or tag of the reference repository")
	flags.StringVar(&f.choicesPath, "choices-path", "", "path inside the reference repository")
	flags.StringVar(&f.algorithm, "algorithm", "", "similarity algorithm: "+strings.Join(similarity.Names(), ", "))
	flags.Float64Var(&f.threshold, "threshold", 0, "minimum accepted similarity score")
	flags.BoolVar(&f.keepExtension, "keep-extension", false, "append the reference extension instead of swapping it")
	flags.StringVar(&f.side, "side", "", "which side gets renamed: sources or choices")
	flags.BoolVar(&f.includeUnmatched, "include-unmatched", false, "carry unmatched sources along unchanged")
	flags.StringArrayVar(&f.ignore, "ignore", nil, "glob pattern for files to skip (repeatable)")
	flags.StringArrayVar(&f.overrides, "override", nil, `manual match "source=choice" (repeatable)`)
	flags.StringArrayVar(&f.noMatches, "no-match", nil, "source to exclude from matching (repeatable)")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "pick matches interactively")
}

// applyFlags overlays every explicitly set flag onto the loaded config.
// Unset flags leave the config values alone.
func applyFlags(cmd *cobra.Command, f *matchFlags, cfg *config.Config) error {
	set := cmd.Flags().Changed

	if set("choices") && set("choices-repo") {
		return errors.Errorf("choices and choices-repo are mutually exclusive")
	}

	if set("sources") {
		cfg.Sources = f.sources
	}
	if set("choices") {
		cfg.Choices = f.choices
		cfg.ChoicesRepo = config.RepoConfig{}
	}
	if set("choices-repo") {
		cfg.ChoicesRepo.Repo = f.choicesRepo
		cfg.Choices = ""
	}
	if set("choices-ref") {
		cfg.ChoicesRepo.Ref = f.choicesRef
	}
	if set("choices-path") {
		cfg.ChoicesRepo.Path = f.choicesPath
	}
	if set("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if set("threshold") {
		cfg.Threshold = f.threshold
	}
	if set("keep-extension") {
		cfg.KeepExtension = f.keepExtension
	}
	if set("side") {
		cfg.Side = f.side
	}
	if set("include-unmatched") {
		cfg.IncludeUnmatched = f.includeUnmatched
	}
	if set("ignore") {
		cfg.Ignore = f.ignore
	}

	return nil
}

// planOptions maps the validated config onto plan options.
func planOptions(cfg *config.Config, side rename.Side) plan.Options {
	replacements := make([]plan.Replacement, 0, len(cfg.Replacements))
	for _, r := range cfg.Replacements {
		replacements = append(replacements, plan.Replacement{Old: r.Old, New: r.New})
	}

	return plan.Options{
		Threshold:        cfg.Threshold,
		IncludeUnmatched: cfg.IncludeUnmatched,
		Side:             side,
		KeepExtension:    cfg.KeepExtension,
		Replacements:     replacements,
	}
}

// loadConfig loads the config file, overlays flags and validates the
// result. The configured color mode takes effect here.
func loadConfig(cmd *cobra.Command, o *opts.RootOpts, f *matchFlags) (*config.Config, error) {
	cfg, err := o.LoadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, f, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	applyColorMode(cfg.Color)
	return cfg, nil
}
