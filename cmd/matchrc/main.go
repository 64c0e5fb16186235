// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/matchrc/cmd/matchrc/commands"
	"github.com/walteh/matchrc/cmd/matchrc/opts"
	"github.com/walteh/matchrc/pkg/log"
)

func main() {
	o := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "matchrc",
		Short: "Match scrambled file names against reference names, then rename or copy",
		Long: `matchrc compares the files in a source directory against a set of
reference names, pairs every file with its closest name, and renames or
copies the files accordingly. Reference names can come from a local
directory or straight from a repository on GitHub.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(o.Debug)

			// The user logger carries the console UI; zerolog carries
			// diagnostics on stderr.
			level := zerolog.Disabled
			if o.Debug {
				level = zerolog.DebugLevel
			}
			o.UserLogger = log.New(os.Stdout, level)
			cmd.SetContext(log.NewContext(cmd.Context(), o.UserLogger))
		},
		SilenceUsage: true,
	}

	// Add shared flags
	addRootFlags(rootCmd, o)

	// Add commands
	rootCmd.AddCommand(
		commands.NewPlanCmd(o),
		commands.NewCopyCmd(o),
		commands.NewRenameCmd(o),
		commands.NewInitCmd(o),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
