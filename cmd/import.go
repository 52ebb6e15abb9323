package cmd

import (
	"fmt"
	"log"
	"tripagent/catalog"
	"tripagent/database"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the PostgreSQL catalog with the JSON files from --data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := catalog.LoadDir(cfg.Catalog.Dir)
		if err != nil {
			return fmt.Errorf("load catalog files: %w", err)
		}

		if err := database.InitDB(cfg.Database.DSN()); err != nil {
			return err
		}
		defer database.Close()

		if err := database.ImportCatalog(cmd.Context(), cat); err != nil {
			return err
		}

		flights, hotels, places := cat.Counts()
		log.Printf("✅ Imported %d flights, %d hotels, %d places from %s", flights, hotels, places, cfg.Catalog.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
