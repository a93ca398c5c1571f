package cli

import (
	"fmt"
	"os"

	"github.com/rcliao/mailthread/internal/mailparse"
	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get [message-id]",
		Short: "Retrieve a message",
		Long:  "Show a stored message by Message-ID (angle brackets optional), with its references and the messages replying to it.",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Mailbox (default: $MAILTHREAD_MAILBOX or inbox)")
	cmd.Flags().Bool("history", false, "Return every stored copy (newest first)")
	cmd.Flags().Bool("replies", false, "Include messages that reference this one")

	RootCmd.AddCommand(cmd)
}

type getResult struct {
	model.Message
	Replies []string `json:"replies,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) {
	mailbox := mailboxFlag(cmd)
	history, _ := cmd.Flags().GetBool("history")
	withReplies, _ := cmd.Flags().GetBool("replies")

	id := args[0]
	if parsed := mailparse.MessageID(id); parsed != "" {
		id = parsed
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	msgs, err := s.Get(cmd.Context(), store.GetParams{
		Mailbox:   mailbox,
		MessageID: id,
		History:   history,
	})
	if err != nil {
		exitErr("get", err)
	}

	if textOutput() {
		writeMessages(os.Stdout, msgs)
		for _, ref := range msgs[0].References {
			fmt.Printf("  references <%s>\n", ref)
		}
		return
	}

	if history {
		printJSON(msgs)
		return
	}

	res := getResult{Message: msgs[0]}
	if withReplies {
		replies, err := s.Replies(cmd.Context(), mailbox, id)
		if err != nil {
			exitErr("replies", err)
		}
		for _, r := range replies {
			res.Replies = append(res.Replies, r.MessageID)
		}
	}
	printJSON(res)
}
