package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/matchrc/cmd/matchrc/opts"
	"github.com/walteh/matchrc/pkg/fileop"
	"github.com/walteh/matchrc/pkg/log"
	"github.com/walteh/matchrc/pkg/plan"
	"github.com/walteh/matchrc/pkg/rename"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates the copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	f := &matchFlags{}
	var to string

	cmd := &cobra.Command{
		Use:   "copy [files...]",
		Short: "Copy matched files into a directory under their new names",
		Long: `Copy builds the match table and copies every accepted file into the
destination directory under its new name. Originals are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			cfg, err := loadConfig(cmd, o, f)
			if err != nil {
				return err
			}
			if err := validateInputs(cfg, args); err != nil {
				return err
			}

			if cmd.Flags().Changed("to") {
				cfg.Output = to
			}
			if cfg.Output == "" {
				return errors.Errorf("no destination: set output in the config or pass --to")
			}

			side, err := rename.ParseSide(cfg.Side)
			if err != nil {
				return err
			}
			if side == rename.Choices && cfg.HasRemoteChoices() {
				return errors.Errorf("remote choices cannot be copied, use --side sources")
			}

			idx, err := buildIndex(ctx, cfg, args)
			if err != nil {
				return err
			}
			if err := applyOverrideFlags(ctx, idx, f); err != nil {
				return err
			}

			items := plan.Build(idx, planOptions(cfg, side))
			if len(items) == 0 {
				logger.Warning("nothing to copy")
				return nil
			}

			logger.StartBatch(ctx, log.BatchOperation{
				Action:      "copying",
				Destination: cfg.Output,
				Side:        side.String(),
				Items:       len(items),
			})

			executor := fileop.NewExecutor(fileop.Options{DestDir: cfg.Output})
			results, err := executor.CopyAll(ctx, items)
			if err != nil {
				return errors.Errorf("copying files: %w", err)
			}

			for _, result := range results {
				logger.LogFileResult(ctx, fileResult(result, "copied"))
			}

			summary := fileop.Summarize(results)
			logger.EndBatch(ctx, summary.New, summary.Overwritten, summary.Failed)

			if summary.Failed > 0 {
				return errors.Errorf("%d of %d items failed", summary.Failed, summary.Total())
			}
			return nil
		},
	}

	addMatchFlags(cmd, f)
	cmd.Flags().StringVar(&to, "to", "", "destination directory")
	return cmd
}
