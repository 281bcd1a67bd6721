package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/health"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

var doctorCategory string

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"health"},
	Short:   "Check configuration, backend and catalogue health",
	Long: `Run diagnostic checks against the estimator setup.

Checks are grouped into categories:
  config     - configuration values and files
  backend    - catalogue endpoint reachability
  catalogue  - catalogue contents (categories, prices, feature ids)
  stub       - development stub catalogue file and inbox

Use --category to run only one group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if doctorCategory != "" && !slices.Contains(health.Categories(), doctorCategory) {
			return fmt.Errorf("unknown category %q (want one of: %s)",
				doctorCategory, strings.Join(health.Categories(), ", "))
		}

		cfg := config.Get()
		log, closer, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closer.Close()

		provider, err := catalogueProvider(cfg, "", log)
		if err != nil {
			return err
		}
		checker := health.NewChecker(cfg, provider)

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		var report *health.Report
		if doctorCategory != "" {
			fmt.Println(styles.Label.Render("CATEGORY") + "  " + styles.Value.Render(doctorCategory))
			report = checker.RunCategory(ctx, doctorCategory)
		} else {
			report = checker.RunAll(ctx)
		}

		fmt.Print(health.FormatReport(report))
		if !report.WizardReady {
			return errors.New("the estimator is not ready, see the fixes above")
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorCategory, "category", "", "run checks in one category: "+strings.Join(health.Categories(), ", "))
	rootCmd.AddCommand(doctorCmd)
}
