package main

import (
	"github.com/spf13/cobra"

	"github.com/rpeck07/StudentoS/storage/database"
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate COMMAND [ARGS...]",
		Short:              "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version)",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			if cli.backend.DB == nil {
				return errNoDatabase
			}
			if err := database.Prepare(cli.backend.DB); err != nil {
				return err
			}
			return gooseRunFunc(args[0], cli.backend.DB.DB, database.MigrationsDir, args[1:]...)
		},
	}
}
