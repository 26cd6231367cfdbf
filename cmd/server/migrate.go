package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		conn, err := openMigrated(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		slog.Info("schema up to date")
		return nil
	},
}
