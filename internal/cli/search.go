package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rcliao/mailthread/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search messages by subject or Message-ID",
		Long:  "Substring search over subjects and Message-IDs. With --normalized, match every message whose subject normalizes to the query's (reply markers and list tags stripped).",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Filter by mailbox")
	cmd.Flags().Bool("normalized", false, "Match normalized subjects exactly")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	mailbox, _ := cmd.Flags().GetString("mailbox")
	normalized, _ := cmd.Flags().GetBool("normalized")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Mailbox:    mailbox,
		Query:      query,
		Normalized: normalized,
		Limit:      limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if textOutput() {
		writeMessages(os.Stdout, results)
		return
	}
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}
