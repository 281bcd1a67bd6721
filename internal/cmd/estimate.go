package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/intake"
	"github.com/Dallionking/project-estimator/internal/quote"
	"github.com/Dallionking/project-estimator/internal/tui/models"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
	"github.com/Dallionking/project-estimator/internal/tui/views"
)

var estimateCatalogue string

var estimateCmd = &cobra.Command{
	Use:     "estimate",
	Aliases: []string{"wizard"},
	Short:   "Start the interactive quote wizard",
	Long: `Walk through the six estimator steps: client info, project details,
categories, services, features and review. The running total updates as
features are picked; the finished brief is submitted to the backend.

Jump between reached steps with alt+1..alt+6. Ctrl+C asks before discarding
the estimate.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		log, closer, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closer.Close()

		provider, err := catalogueProvider(cfg, estimateCatalogue, log)
		if err != nil {
			return err
		}

		log.Debug().Str("api", cfg.API.BaseURL).Msg("starting estimator")
		out, err := views.RunEstimator(models.EstimatorDeps{
			Catalogue: provider,
			Submitter: intake.NewClient(newBackend(cfg, log), cfg.API.SubmitPath, log),
			Message:   intake.Message,
			Timeout:   cfg.API.Timeout,
			Log:       log,
		})
		if err != nil {
			return err
		}

		if !out.Submitted {
			fmt.Println(styles.Dim("Estimate discarded."))
			return nil
		}
		fmt.Println(styles.Green("✓") + " Submitted " + styles.Bold(out.Answers.ProjectName) + " for " + out.Answers.ClientName)
		fmt.Printf("  %d services, %d features, total %s\n",
			out.Answers.Selection.ServiceCount(),
			out.Answers.Selection.FeatureCount(),
			styles.Gold(quote.FormatMoney(out.Total)))
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateCatalogue, "catalogue", "", "read the catalogue from a local JSON file instead of the backend")
	rootCmd.AddCommand(estimateCmd)
}
