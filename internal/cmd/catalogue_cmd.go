package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/quote"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

var (
	catalogueJSON     bool
	catalogueCategory string
	catalogueFile     string
)

var catalogueCmd = &cobra.Command{
	Use:     "catalogue",
	Aliases: []string{"catalog", "services"},
	Short:   "List the services and features on offer",
	Long: `Fetch the service catalogue from the backend (or a local file with
--file) and print it grouped by category.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogueCategory != "" && !catalogue.Category(catalogueCategory).Valid() {
			return fmt.Errorf("unknown category %q", catalogueCategory)
		}

		cfg := config.Get()
		log, closer, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closer.Close()

		provider, err := catalogueProvider(cfg, catalogueFile, log)
		if err != nil {
			return err
		}
		cat, err := provider.Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching catalogue: %w", err)
		}

		cats := catalogue.AllCategories()
		if catalogueCategory != "" {
			cats = []catalogue.Category{catalogue.Category(catalogueCategory)}
		}

		if catalogueJSON {
			out := make(catalogue.Catalogue)
			for _, svc := range cat.InCategories(categorySet(cats)) {
				out[svc.ID] = svc
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		printCatalogue(cat, cats)
		return nil
	},
}

func categorySet(cats []catalogue.Category) map[catalogue.Category]bool {
	set := make(map[catalogue.Category]bool, len(cats))
	for _, c := range cats {
		set[c] = true
	}
	return set
}

func printCatalogue(cat catalogue.Catalogue, cats []catalogue.Category) {
	fmt.Println(styles.Title.Render("Service Catalogue"))
	fmt.Println()

	shown := 0
	for _, c := range cats {
		services := cat.InCategories(map[catalogue.Category]bool{c: true})
		if len(services) == 0 {
			continue
		}
		fmt.Println(styles.Subtitle.Render(c.Label()) + "  " + styles.Dim(c.Description()))
		for _, svc := range services {
			shown++
			fmt.Printf("  %s %s\n", styles.Bold(svc.Name), styles.Dim("("+svc.ID+")"))
			for _, fc := range svc.FeatureCategories {
				fmt.Println("    " + styles.Cyan(fc.Name))
				for _, f := range fc.Features {
					fmt.Printf("      %-36s %s\n", styles.TruncateWithEllipsis(f.Name, 36), styles.Gold(quote.FormatMoney(f.Price)))
				}
			}
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Println(styles.Dim("No services found."))
		return
	}
	fmt.Println(styles.Divider(50))
	fmt.Println(styles.Dim(fmt.Sprintf("%d services", shown)))
}

func init() {
	catalogueCmd.Flags().BoolVar(&catalogueJSON, "json", false, "print the catalogue as JSON")
	catalogueCmd.Flags().StringVar(&catalogueCategory, "category", "", "only show one category")
	catalogueCmd.Flags().StringVar(&catalogueFile, "file", "", "read the catalogue from a local JSON file")
	rootCmd.AddCommand(catalogueCmd)
}
