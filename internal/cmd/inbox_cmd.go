package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/inbox"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

var (
	inboxDir    string
	inboxAll    bool
	inboxFollow bool
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Review submissions received by the stub backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInbox()
		if err != nil {
			return err
		}
		if err := printInbox(in); err != nil {
			return err
		}
		if !inboxFollow {
			return nil
		}

		log, closer, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closer.Close()

		w, err := inbox.NewWatcher(in, log)
		if err != nil {
			return err
		}
		defer w.Close()

		fmt.Println(styles.Dim("Watching for submissions, ctrl+c to stop."))
		for ev := range w.Watch(cmd.Context()) {
			ts := ev.Time.Format("15:04:05")
			switch {
			case ev.Type == inbox.EventAdded && ev.Submission != nil:
				fmt.Printf("%s %s %s\n", styles.Dim(ts), styles.Green("+"), submissionLine(*ev.Submission))
			case ev.Type == inbox.EventArchived:
				fmt.Printf("%s %s %s archived\n", styles.Dim(ts), styles.Dim("-"), ev.ID)
			default:
				fmt.Printf("%s %s %s %s\n", styles.Dim(ts), styles.Red("x"), ev.ID, ev.Type)
			}
		}
		return nil
	},
}

var inboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List submissions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInbox()
		if err != nil {
			return err
		}
		return printInbox(in)
	},
}

var inboxShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one submission with its payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInbox()
		if err != nil {
			return err
		}
		s, err := in.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Println(styles.Title.Render(s.ProjectName))
		fmt.Println(styles.Label.Render("ID") + styles.Value.Render(s.ID))
		fmt.Println(styles.Label.Render("Received") + styles.Value.Render(s.ReceivedAt.Local().Format("2006-01-02 15:04")))
		fmt.Println(styles.Label.Render("Status") + styles.Value.Render(string(s.Status)))
		fmt.Println(styles.Label.Render("Client") + styles.Value.Render(s.ClientName+" <"+s.Email+">"))
		fmt.Println(styles.Label.Render("Total") + styles.MoneyText.Render("$"+s.EstimatedTotal))
		fmt.Println()

		var buf bytes.Buffer
		if err := json.Indent(&buf, s.Payload, "", "  "); err != nil {
			return fmt.Errorf("formatting payload: %w", err)
		}
		fmt.Println(buf.String())
		return nil
	},
}

var inboxArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Move a submission to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInbox()
		if err != nil {
			return err
		}
		if err := in.Archive(args[0]); err != nil {
			return err
		}
		fmt.Println(styles.Green("✓") + " Archived " + args[0])
		return nil
	},
}

func openInbox() (*inbox.Inbox, error) {
	return inbox.Open(orDefault(inboxDir, config.Get().Stub.InboxDir))
}

func printInbox(in *inbox.Inbox) error {
	subs, err := in.List(inboxAll)
	if err != nil {
		return err
	}
	counts, err := in.Count()
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render("Inbox") + "  " +
		styles.Badge(fmt.Sprintf("%d new", counts.New), styles.AccentPrimary) + " " +
		styles.Dim(fmt.Sprintf("%d archived", counts.Archived)))
	if len(subs) == 0 {
		fmt.Println(styles.Dim("No submissions."))
		return nil
	}
	for _, s := range subs {
		fmt.Println(submissionLine(s))
	}
	return nil
}

func submissionLine(s inbox.Submission) string {
	line := fmt.Sprintf("%s  %s  %-24s %-20s %s",
		styles.Dim(s.ID),
		s.ReceivedAt.Local().Format("Jan 02 15:04"),
		styles.TruncateWithEllipsis(s.ProjectName, 24),
		styles.TruncateWithEllipsis(s.ClientName, 20),
		styles.Gold("$"+s.EstimatedTotal))
	if s.Status == inbox.StatusArchived {
		line += " " + styles.Dim("(archived)")
	}
	return line
}

func init() {
	inboxCmd.PersistentFlags().StringVar(&inboxDir, "dir", "", "inbox directory (default from stub.inbox_dir)")
	inboxCmd.PersistentFlags().BoolVar(&inboxAll, "all", false, "include archived submissions")
	inboxCmd.Flags().BoolVarP(&inboxFollow, "follow", "f", false, "keep watching for new submissions")
	inboxCmd.AddCommand(inboxListCmd, inboxShowCmd, inboxArchiveCmd)
	rootCmd.AddCommand(inboxCmd)
}
