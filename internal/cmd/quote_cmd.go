package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/intake"
	"github.com/Dallionking/project-estimator/internal/quote"
	"github.com/Dallionking/project-estimator/internal/tui/components"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

var (
	quoteSubmit bool
	quoteJSON   bool
	quoteFile   string
)

var quoteCmd = &cobra.Command{
	Use:   "quote <sheet.yml>",
	Short: "Price an answer sheet without the interactive wizard",
	Long: `Load a YAML answer sheet, run it through the same step checks as the
wizard and print the brief. With --submit the brief is sent to the backend.

Example sheet:

  clientName: Acme
  contactName: Jane Doe
  email: jane@acme.test
  contactNumber: "+1 555 123 4567"
  projectName: Storefront
  projectDescription: A new online store
  categories: [development]
  services:
    web-app: [auth, payments]
  signature: Jane Doe
  agreed: true`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := quote.LoadSheet(args[0])
		if err != nil {
			return err
		}

		cfg := config.Get()
		log, closer, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closer.Close()

		provider, err := catalogueProvider(cfg, quoteFile, log)
		if err != nil {
			return err
		}
		cat, err := provider.Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching catalogue: %w", err)
		}

		w := quote.New(quote.WithMessageFunc(intake.Message))
		w.SetCatalogue(cat)
		if err := sheet.Apply(w); err != nil {
			var vf *quote.ValidationFailure
			if errors.As(err, &vf) {
				printValidation(vf)
				return fmt.Errorf("sheet stops at step %d (%s)", int(vf.Step)+1, vf.Step.Title())
			}
			return err
		}

		if quoteJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(intake.NewPayload(*w.Answers())); err != nil {
				return err
			}
		} else {
			fmt.Println(components.RenderMarkdown(quote.Brief(w.Answers()), 80))
		}

		if !quoteSubmit {
			return nil
		}
		client := intake.NewClient(newBackend(cfg, log), cfg.API.SubmitPath, log)
		if err := w.Submit(cmd.Context(), client); err != nil {
			var vf *quote.ValidationFailure
			if errors.As(err, &vf) {
				printValidation(vf)
				return errors.New("sheet is not ready to submit")
			}
			return errors.New(w.SubmitError())
		}
		fmt.Fprintln(os.Stderr, styles.Green("✓")+" Submitted, total "+styles.Gold(quote.FormatMoney(w.Total())))
		return nil
	},
}

func printValidation(vf *quote.ValidationFailure) {
	fmt.Fprintln(os.Stderr, styles.Red("✗ "+vf.Step.Title()))
	for _, f := range vf.Errors.Fields() {
		fmt.Fprintf(os.Stderr, "  %-20s %s\n", f, vf.Errors[f])
	}
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteSubmit, "submit", false, "submit the brief to the backend")
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "print the submission payload instead of the brief")
	quoteCmd.Flags().StringVar(&quoteFile, "catalogue", "", "read the catalogue from a local JSON file")
	rootCmd.AddCommand(quoteCmd)
}
