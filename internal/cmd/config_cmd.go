package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// --- config (parent) ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the configuration after merging defaults, config files and
ESTIMATOR_* environment variables, followed by any validation problems.

Subcommands:
  init   Write a starter estimator.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		fmt.Println(styles.Title.Render("Configuration"))
		fmt.Println()

		sources := config.Sources()
		if len(sources) == 0 {
			fmt.Println(styles.Label.Render("SOURCES") + "   " + styles.Dim("defaults only"))
		}
		for i, src := range sources {
			label := "         "
			if i == 0 {
				label = "SOURCES  "
			}
			fmt.Println(styles.Label.Render(label) + " " + styles.Value.Render(src))
		}
		fmt.Println()
		fmt.Println(styles.Divider(50))
		fmt.Println()

		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))

		issues := config.Validate(cfg)
		if len(issues) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Println(styles.Red(fmt.Sprintf("%d problem(s):", len(issues))))
		for _, ve := range issues {
			fmt.Printf("  %s %s\n", styles.Bold(ve.Field), styles.Dim(ve.Message))
		}
		return fmt.Errorf("configuration is invalid")
	},
}

// --- config init ---

var (
	configInitGlobal bool
	configInitForce  bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write the default configuration to ./estimator.yml, or to the global
location with --global. Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectPath()
		if configInitGlobal {
			path = config.GlobalPath()
		}
		if err := config.Write(path, config.Default(), configInitForce); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Println(styles.Green("Wrote") + " " + styles.Value.Render(path))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write to "+config.GlobalPath())
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
