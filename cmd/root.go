package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"tripagent/catalog"
	"tripagent/config"
	"tripagent/database"
	"tripagent/services"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	sourceFlag string
)

var rootCmd = &cobra.Command{
	Use:          "tripagent",
	Short:        "Plan a trip: cheapest flight, hotel under budget, weather, itinerary and cost",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Catalog directory with flights.json, hotels.json and places.json (overrides CATALOG_DIR)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Catalog source: file or postgres (overrides CATALOG_SOURCE)")
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Catalog.Dir = dataDir
	}
	if sourceFlag != "" {
		cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(sourceFlag))
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadCatalog opens the database first when the catalog lives in PostgreSQL;
// callers should defer database.Close.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Source == config.SourcePostgres {
		if err := database.InitDB(cfg.Database.DSN()); err != nil {
			return nil, err
		}
		return database.LoadCatalog(ctx)
	}
	return catalog.LoadDir(cfg.Catalog.Dir)
}

func newPlanner(cfg *config.Config, cat *catalog.Catalog) *services.Planner {
	geocoder := services.NewNominatimClient(cfg.Weather.NominatimURL, cfg.Weather.UserAgent, cfg.Weather.Timeout)
	forecaster := services.NewOpenMeteoClient(cfg.Weather.OpenMeteoURL, cfg.Weather.Timeout)
	return services.NewPlanner(cat, services.NewWeatherEstimator(geocoder, forecaster, nil))
}

func newAIClient(cfg *config.Config) *services.AIClient {
	return services.NewAIClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout)
}
