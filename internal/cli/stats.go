package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	if textOutput() {
		fmt.Printf("database: %s (%s)\n", stats.DBPath, humanize.Bytes(uint64(stats.DBSizeBytes)))
		fmt.Printf("messages: %s active, %s stored, %s references\n",
			humanize.Comma(int64(stats.ActiveMessages)),
			humanize.Comma(int64(stats.TotalMessages)),
			humanize.Comma(int64(stats.TotalRefs)))
		for _, mb := range stats.Mailboxes {
			fmt.Printf("  %s: %s messages, %s subjects\n", mb.Mailbox, humanize.Comma(int64(mb.Count)), humanize.Comma(int64(mb.Subjects)))
		}
		return
	}
	printJSON(stats)
}
