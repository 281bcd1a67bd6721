package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/inbox"
	"github.com/Dallionking/project-estimator/internal/stub"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

var (
	serveAddr      string
	serveCatalogue string
	serveInbox     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stand-in for the intake backend",
	Long: `Serve the catalogue from a JSON file and accept project submissions
into a local inbox. Point api.base_url at the listen address to exercise
the wizard end to end. The catalogue file is reloaded when it changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		addr := orDefault(serveAddr, cfg.Stub.Addr)
		catPath := orDefault(serveCatalogue, cfg.Stub.CatalogueFile)
		inboxDir := orDefault(serveInbox, cfg.Stub.InboxDir)
		if catPath == "" {
			return fmt.Errorf("no catalogue file: set stub.catalogue_file or pass --catalogue")
		}

		log, closer, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closer.Close()

		fs, err := catalogue.NewFileSource(catPath, log)
		if err != nil {
			return err
		}
		in, err := inbox.Open(inboxDir)
		if err != nil {
			return err
		}

		reloads, err := fs.Watch(cmd.Context())
		if err != nil {
			log.Warn().Err(err).Msg("catalogue hot reload disabled")
		} else {
			go func() {
				for cat := range reloads {
					log.Info().Int("services", len(cat)).Msg("catalogue reloaded")
				}
			}()
		}

		fmt.Println(styles.CompactLogo + "  stub backend on " + styles.Cyan("http://"+addr))
		fmt.Println(styles.Dim("  catalogue " + catPath + ", inbox " + in.Dir()))
		return stub.NewServer(fs, in, log).ListenAndServe(cmd.Context(), addr)
	},
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from stub.addr)")
	serveCmd.Flags().StringVar(&serveCatalogue, "catalogue", "", "catalogue JSON file (default from stub.catalogue_file)")
	serveCmd.Flags().StringVar(&serveInbox, "inbox", "", "inbox directory (default from stub.inbox_dir)")
	rootCmd.AddCommand(serveCmd)
}
