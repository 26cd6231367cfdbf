package main

import (
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the food reference table from a CSV file",
	Long:  "Replace the food reference table. Without --file the FOOD_SEED_PATH file or the embedded table is used.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		conn, err := openMigrated(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		path := seedFile
		if path == "" {
			path = cfg.FoodSeedPath
		}
		return seedFoods(cmd.Context(), conn, path)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "CSV file with name and cal_per_gram or kcal_per_100g columns")
}
