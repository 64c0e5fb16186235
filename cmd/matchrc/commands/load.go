package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/walteh/matchrc/pkg/config"
	"github.com/walteh/matchrc/pkg/fileop"
	"github.com/walteh/matchrc/pkg/log"
	"github.com/walteh/matchrc/pkg/match"
	"github.com/walteh/matchrc/pkg/remote"
	"github.com/walteh/matchrc/pkg/scan"
	"github.com/walteh/matchrc/pkg/similarity"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// validateInputs checks that the command has somewhere to read sources
// and choices from before any scanning starts.
func validateInputs(cfg *config.Config, args []string) error {
	if len(args) == 0 && cfg.Sources == "" {
		return errors.Errorf("no sources: set sources in the config or pass files as arguments")
	}
	if cfg.Choices == "" && !cfg.HasRemoteChoices() {
		return errors.Errorf("no choices: set choices or choices_repo in the config")
	}
	return nil
}

// buildIndex scans both sides concurrently and builds a fully scored
// index. Positional arguments name explicit source files and take the
// place of the sources directory.
func buildIndex(ctx context.Context, cfg *config.Config, args []string) (*match.Index, error) {
	alg, err := similarity.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, errors.Errorf("algorithm: %w", err)
	}

	var sources, choices scan.Result

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if len(args) > 0 {
			sources = scan.Files(egCtx, args)
			return nil
		}
		var err error
		sources, err = scan.Dir(egCtx, cfg.Sources, cfg.Ignore)
		if err != nil {
			return errors.Errorf("scanning sources: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		choices, err = loadChoices(egCtx, cfg)
		if err != nil {
			return errors.Errorf("loading choices: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if skipped := sources.Skipped + choices.Skipped; skipped > 0 {
		log.FromContext(ctx).Warningf("%d entries skipped", skipped)
	}

	idx := match.NewIndex(alg)
	idx.AddChoices(choices.Entries)
	idx.AddSources(sources.Entries)
	return idx, nil
}

// loadChoices reads choice names from the local directory or the
// configured reference repository.
func loadChoices(ctx context.Context, cfg *config.Config) (scan.Result, error) {
	if !cfg.HasRemoteChoices() {
		return scan.Dir(ctx, cfg.Choices, nil)
	}

	lister, err := remote.Get("github")
	if err != nil {
		return scan.Result{}, err
	}

	entries, err := lister.List(ctx, remote.RepoArgs{
		Repo: cfg.ChoicesRepo.Repo,
		Ref:  cfg.ChoicesRepo.Ref,
		Path: cfg.ChoicesRepo.Path,
	})
	if err != nil {
		return scan.Result{}, err
	}

	return scan.Result{Entries: entries}, nil
}

// applyOverrideFlags pins matches named on the command line, then lets
// the interactive picker adjust the rest.
func applyOverrideFlags(ctx context.Context, idx *match.Index, f *matchFlags) error {
	if err := applyOverrides(idx, f.overrides, f.noMatches); err != nil {
		return err
	}
	if f.interactive {
		return runInteractive(ctx, idx)
	}
	return nil
}

// fileResult maps an executed operation onto its console line. The verb
// names what a fresh destination got done to it.
func fileResult(result fileop.Result, did string) log.FileResult {
	fr := log.FileResult{
		Name:        result.Item.Name,
		Destination: result.Item.Destination,
	}

	switch result.Outcome {
	case fileop.OutcomeOverwritten:
		fr.Status = "overwrote"
		fr.IsOverwritten = true
	case fileop.OutcomeFailed:
		fr.Status = result.Err.Error()
		fr.IsFailed = true
	default:
		fr.Status = did
		fr.IsNew = true
	}

	return fr
}

// applyColorMode applies the configured color mode to every console
// library in use. The auto mode leaves terminal detection alone.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
		pterm.EnableColor()
	case "never":
		color.NoColor = true
		pterm.DisableColor()
	}
}
