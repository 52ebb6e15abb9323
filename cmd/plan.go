package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"tripagent/database"
	"tripagent/services"

	"github.com/spf13/cobra"
)

var (
	fromArg       string
	toArg         string
	daysArg       int
	maxHotelPrice float64
	notesFlag     bool
	pdfPath       string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(ctx, cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		defer database.Close()

		plan, err := newPlanner(cfg, cat).Plan(ctx, services.TripRequest{
			Source:        strings.TrimSpace(fromArg),
			Destination:   strings.TrimSpace(toArg),
			Days:          daysArg,
			MaxHotelPrice: maxHotelPrice,
		})
		if errors.Is(err, services.ErrNoOffer) {
			// not a failure: the catalog simply has nothing to offer
			return services.RenderNoOffer(cmd.OutOrStdout())
		}
		if err != nil {
			return err
		}

		if notesFlag {
			plan.Notes = newAIClient(cfg).NotesFor(ctx, plan)
		}

		if err := services.RenderText(cmd.OutOrStdout(), plan, cfg.CurrencySymbol); err != nil {
			return err
		}

		if pdfPath != "" {
			data, err := services.GeneratePlanPDF(plan, cfg.CurrencySymbol)
			if err != nil {
				return err
			}
			if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nPDF saved to %s\n", pdfPath)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&fromArg, "from", "f", "", "Source city")
	planCmd.Flags().StringVarP(&toArg, "to", "t", "", "Destination city")
	planCmd.Flags().IntVarP(&daysArg, "days", "d", 3, "Number of days (1-30)")
	planCmd.Flags().Float64VarP(&maxHotelPrice, "max-hotel-price", "p", services.DefaultMaxHotelPrice, "Maximum hotel price per night")
	planCmd.Flags().BoolVar(&notesFlag, "notes", false, "Add travel notes (Hugging Face, with offline fallback)")
	planCmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the plan as a PDF to this file")
	planCmd.MarkFlagRequired("from")
	planCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(planCmd)
}
