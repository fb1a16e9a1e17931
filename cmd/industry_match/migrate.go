package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	applied, err := database.Migrate(ctx)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
		return nil
	}
	for _, name := range applied {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
	}
	return nil
}
