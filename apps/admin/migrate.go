package main

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/codedaily/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command: up, up-by-one, up-to, down, down-to, redo, reset, status, version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return gooseRunFunc(cmd.Context(), cli.db, cli.engine, args[0], args[1:]...)
		},
	}
}
