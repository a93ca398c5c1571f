package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	mailboxCmd := &cobra.Command{
		Use:   "mailbox",
		Short: "Mailbox management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all mailboxes",
		Run:   runMailboxList,
	}

	mailboxCmd.AddCommand(listCmd)
	RootCmd.AddCommand(mailboxCmd)
}

func runMailboxList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.ListMailboxes(cmd.Context())
	if err != nil {
		exitErr("list mailboxes", err)
	}

	if textOutput() {
		for _, mb := range rows {
			fmt.Printf("%s\t%s\n", mb.Mailbox, humanize.Comma(int64(mb.Count)))
		}
		return
	}
	printJSON(rows)
}
