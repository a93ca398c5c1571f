package cli

import (
	"fmt"

	"github.com/rcliao/mailthread/internal/mailparse"
	"github.com/rcliao/mailthread/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [message-id]",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Mailbox (default: $MAILTHREAD_MAILBOX or inbox)")
	cmd.Flags().Bool("hard", false, "Permanent delete (irreversible)")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	mailbox := mailboxFlag(cmd)
	hard, _ := cmd.Flags().GetBool("hard")

	id := args[0]
	if parsed := mailparse.MessageID(id); parsed != "" {
		id = parsed
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	err = s.Rm(cmd.Context(), store.RmParams{
		Mailbox:   mailbox,
		MessageID: id,
		Hard:      hard,
	})
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"mailbox":%q,"message_id":%q}`+"\n", mailbox, id)
}
