package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/matchrc/cmd/matchrc/opts"
	"github.com/walteh/matchrc/pkg/config"
	"github.com/walteh/matchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewInitCmd creates the init command
func NewInitCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := os.Stat(o.ConfigFile); err == nil {
				return errors.Errorf("config file %s already exists", o.ConfigFile)
			} else if !errors.Is(err, os.ErrNotExist) {
				return errors.Errorf("checking config file: %w", err)
			}

			if err := config.Default().Save(ctx, o.ConfigFile); err != nil {
				return err
			}

			log.FromContext(ctx).Successf("wrote %s", o.ConfigFile)
			return nil
		},
	}

	return cmd
}
