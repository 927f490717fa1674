// Package ctl implements daybookctl, the operator command line of daybookd.
package ctl

import (
	"github.com/dmitrijs2005/daybook/internal/server/config"
	"github.com/spf13/cobra"
)

// New builds the root command. Flag defaults come from the same DAYBOOK_*
// environment the server reads.
func New() *cobra.Command {
	cfg := config.LoadEnvConfig()

	cmd := &cobra.Command{
		Use:           "daybookctl",
		Short:         "Operate a daybook server: migrate the store, issue access keys, check prompts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd, cfg)
	return cmd
}

func AddCommands(topLevel *cobra.Command, cfg *config.Config) {
	addMigrate(topLevel, cfg)
	addIssueKey(topLevel, cfg)
	addPrompts(topLevel, cfg)
}
