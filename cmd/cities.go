package cmd

import (
	"fmt"
	"tripagent/database"

	"github.com/spf13/cobra"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the cities that appear in the flight catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		defer database.Close()

		for _, city := range cat.Cities() {
			fmt.Fprintln(cmd.OutOrStdout(), city)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}
