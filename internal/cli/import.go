package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rcliao/mailthread/internal/logger"
	"github.com/rcliao/mailthread/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import messages from mbox files or JSON",
		Long: "Split mbox files (plain or gzip) and store the threading headers of every message.\n" +
			"With --json, read records in the format produced by export from stdin instead.",
		Run: runImport,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Mailbox to store into (default: $MAILTHREAD_MAILBOX or inbox)")
	cmd.Flags().Bool("json", false, "Read JSON records from stdin")
	cmd.Flags().StringP("encoding", "e", "", "Charset of the mbox files (default: utf-8)")
	cmd.Flags().Bool("lenient", false, "Treat every line starting with \"From \" as a message boundary")
	cmd.Flags().Bool("raw-headers", false, "Keep RFC 2047 encoded words undecoded")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	mailbox := mailboxFlag(cmd)
	fromJSON, _ := cmd.Flags().GetBool("json")
	encoding, _ := cmd.Flags().GetString("encoding")
	lenient, _ := cmd.Flags().GetBool("lenient")
	rawHeaders, _ := cmd.Flags().GetBool("raw-headers")

	var msgs []model.Message
	skipped := 0
	switch {
	case fromJSON:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		if err := json.Unmarshal(data, &msgs); err != nil {
			exitErr("parse json", err)
		}
		// Export carries the source mailbox; an explicit flag overrides it.
		if flag, _ := cmd.Flags().GetString("mailbox"); flag != "" {
			for i := range msgs {
				msgs[i].Mailbox = flag
			}
		}
	case len(args) > 0:
		var err error
		msgs, skipped, err = readMailboxes(args, readOptions{
			Mailbox:    mailbox,
			Charset:    encodingOrConfig(encoding),
			Lenient:    lenient,
			RawHeaders: rawHeaders,
		})
		if err != nil {
			exitErr("read mailbox", err)
		}
	default:
		exitErr("import", fmt.Errorf("mbox files or --json are required"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	batch, imported, err := s.Import(cmd.Context(), mailbox, msgs)
	if err != nil {
		exitErr("import", err)
	}
	logger.Log.Info("imported", "mailbox", mailbox, "batch", batch, "messages", imported, "skipped", skipped)

	if textOutput() {
		fmt.Printf("imported %s messages into %s (%s skipped)\n",
			humanize.Comma(int64(imported)), mailbox, humanize.Comma(int64(skipped)))
		return
	}
	fmt.Printf(`{"ok":true,"imported":%d,"skipped":%d,"batch":%q}`+"\n", imported, skipped, batch)
}
