package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the build version, git commit, build date, and Go runtime details.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(styles.Cyan(styles.CompactLogo) + "  " + styles.Value.Render("v"+Version))
		fmt.Println()
		rows := [][2]string{
			{"VERSION", Version},
			{"COMMIT", GitCommit},
			{"BUILT", BuildDate},
			{"GO", runtime.Version()},
			{"OS/ARCH", runtime.GOOS + "/" + runtime.GOARCH},
		}
		for _, r := range rows {
			fmt.Printf("%s  %s\n", styles.Label.Render(fmt.Sprintf("%-8s", r[0])), styles.Value.Render(r[1]))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
