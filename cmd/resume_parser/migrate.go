package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables used to store parse results",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, err := connectStore(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}
