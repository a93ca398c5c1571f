package cli

import (
	"fmt"
	"os"

	"github.com/rcliao/mailthread/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored messages in import order",
		Run:   runList,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Mailbox (default: $MAILTHREAD_MAILBOX or inbox)")
	cmd.Flags().Bool("all", false, "List every mailbox")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Int("offset", 0, "Skip this many messages")
	cmd.Flags().Bool("ids-only", false, "Only output Message-IDs")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	mailbox := mailboxFlag(cmd)
	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")
	if all {
		mailbox = ""
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	msgs, err := s.List(cmd.Context(), store.ListParams{
		Mailbox: mailbox,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, m := range msgs {
			fmt.Printf("%s/<%s>\n", m.Mailbox, m.MessageID)
		}
		return
	}
	if textOutput() {
		writeMessages(os.Stdout, msgs)
		return
	}
	if msgs == nil {
		fmt.Println("[]")
		return
	}
	printJSON(msgs)
}
