package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/matchrc/cmd/matchrc/opts"
	"github.com/walteh/matchrc/pkg/config"
	"github.com/walteh/matchrc/pkg/log"
	"github.com/walteh/matchrc/pkg/match"
	"github.com/walteh/matchrc/pkg/plan"
	"github.com/walteh/matchrc/pkg/rename"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates the plan command
func NewPlanCmd(o *opts.RootOpts) *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "plan [files...]",
		Short: "Show how files would be matched and renamed",
		Long: `Plan builds the match table without touching any file. Every source
is listed with its closest reference name, the similarity score, and
the name it would be given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd, o, f)
			if err != nil {
				return err
			}
			if err := validateInputs(cfg, args); err != nil {
				return err
			}

			idx, err := buildIndex(ctx, cfg, args)
			if err != nil {
				return err
			}
			if err := applyOverrideFlags(ctx, idx, f); err != nil {
				return err
			}

			return renderMatchTable(ctx, idx, cfg)
		},
	}

	addMatchFlags(cmd, f)
	return cmd
}

// renderMatchTable prints one row per source: its name, the score, the
// closest choice and the destination name it would get.
func renderMatchTable(ctx context.Context, idx *match.Index, cfg *config.Config) error {
	logger := log.FromContext(ctx)
	logger.Header(cfg.String())
	logger.LogNewline()

	side, err := rename.ParseSide(cfg.Side)
	if err != nil {
		return err
	}
	opts := planOptions(cfg, side)

	matched := 0
	data := pterm.TableData{{"Source", "Match %", "Closest Match", "Renamed File"}}
	for _, record := range idx.Sources() {
		percent, closest, renamed := "-", "-", "-"

		choice, ok := idx.Resolved(record)
		if ok {
			closest = choice.Name
		}

		score, scored := record.CurrentScore()
		switch {
		case ok && !scored:
			percent = "manual"
		case ok:
			percent = fmt.Sprintf("%.2f", score*100)
		case record.Overridden():
			percent = "none"
		}

		if ok && (!scored || score >= cfg.Threshold) {
			renamed = plan.Destination(record.File().Name, choice.Name, opts)
			matched++
		}

		data = append(data, []string{record.File().Name, percent, closest, renamed})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return errors.Errorf("rendering match table: %w", err)
	}

	logger.LogNewline()
	logger.Infof("%d of %d files matched", matched, len(idx.Sources()))
	return nil
}
