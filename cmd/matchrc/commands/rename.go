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

// NewRenameCmd creates the rename command
func NewRenameCmd(o *opts.RootOpts) *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "rename [files...]",
		Short: "Rename matched files in place",
		Long: `Rename gives every accepted source file its matched name inside the
directory it already lives in. It always acts on the source files,
regardless of the configured side, and leaves unmatched files alone.`,
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

			idx, err := buildIndex(ctx, cfg, args)
			if err != nil {
				return err
			}
			if err := applyOverrideFlags(ctx, idx, f); err != nil {
				return err
			}

			// Renaming in place only ever touches matched sources
			opts := planOptions(cfg, rename.Sources)
			opts.IncludeUnmatched = false

			items := plan.Build(idx, opts)
			if len(items) == 0 {
				logger.Warning("nothing to rename")
				return nil
			}

			logger.StartBatch(ctx, log.BatchOperation{
				Action:      "renaming",
				Destination: "in place",
				Side:        rename.Sources.String(),
				Items:       len(items),
			})

			executor := fileop.NewExecutor(fileop.Options{})
			results := executor.RenameAll(ctx, items)

			for _, result := range results {
				logger.LogFileResult(ctx, fileResult(result, "renamed"))
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
	return cmd
}
