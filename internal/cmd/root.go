package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/backend"
	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/logging"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "estimator",
	Short: "Build, price and submit project estimates",
	Long: `Estimator: Power Your Project

Walk a client through a six-step quote wizard, price the selected
services and features from the live catalogue, and submit the brief
to the intake backend.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(cfgFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(styles.Logo())
		fmt.Println()
		fmt.Println("  Run " + styles.Cyan("estimator estimate") + " to start a new estimate.")
		fmt.Println("  Run " + styles.Cyan("estimator --help") + " for all commands.")
	},
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initColor)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}

func initColor() {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// newLogger builds the command logger. Console logging goes to stderr; pass
// false while a full-screen program owns the terminal.
func newLogger(console bool) (zerolog.Logger, io.Closer, error) {
	opts := logging.Options{Verbose: verbose, NoColor: noColor}
	if console {
		opts.Console = os.Stderr
	}
	log, closer, err := logging.Setup(config.Get().Log, opts)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("setting up logging: %w", err)
	}
	return log, closer, nil
}

func newBackend(cfg *config.Config, log zerolog.Logger) *backend.Client {
	return backend.New(cfg.API.BaseURL, cfg.API.Timeout, backend.WithLogger(log))
}

// catalogueProvider returns a file-backed provider when path is set and the
// backend's catalogue endpoint otherwise.
func catalogueProvider(cfg *config.Config, path string, log zerolog.Logger) (catalogue.Provider, error) {
	if path != "" {
		fs, err := catalogue.NewFileSource(path, log)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
	return catalogue.NewHTTPProvider(newBackend(cfg, log), cfg.API.CataloguePath, log), nil
}
