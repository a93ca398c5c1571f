package cli

import (
	"fmt"
	"os"

	"github.com/rcliao/mailthread/internal/logger"
	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/store"
	"github.com/rcliao/mailthread/internal/threading"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "thread [files...]",
		Short: "Arrange messages into conversation threads",
		Long: "Thread a stored mailbox, or mbox files directly when given, and print the forest.\n" +
			"Threads are ordered by their earliest dated message unless --sort says otherwise.",
		Run: runThread,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Mailbox to thread (default: $MAILTHREAD_MAILBOX or inbox)")
	cmd.Flags().Bool("no-subject", false, "Do not merge threads that share a subject")
	cmd.Flags().StringP("sort", "s", "", "Order threads by date, id or subject (default: $MAILTHREAD_SORT or date)")
	cmd.Flags().BoolP("reverse", "r", false, "Reverse the thread order")
	cmd.Flags().Int("max-depth", 0, "Bound on ancestor walks and tree depth (default: $MAILTHREAD_MAX_DEPTH or 1024)")
	cmd.Flags().Bool("collapse", false, "Replace placeholder roots by their first child")
	cmd.Flags().StringP("encoding", "e", "", "Charset of the mbox files (default: utf-8)")
	cmd.Flags().Bool("lenient", false, "Treat every line starting with \"From \" as a message boundary")

	RootCmd.AddCommand(cmd)
}

func runThread(cmd *cobra.Command, args []string) {
	mailbox := mailboxFlag(cmd)
	noSubject, _ := cmd.Flags().GetBool("no-subject")
	sortKey, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	collapse, _ := cmd.Flags().GetBool("collapse")
	encoding, _ := cmd.Flags().GetString("encoding")
	lenient, _ := cmd.Flags().GetBool("lenient")

	if sortKey == "" {
		sortKey = cfg.Sort
	}
	if !threading.ValidSortKeys[threading.SortKey(sortKey)] {
		exitErr("thread", fmt.Errorf("invalid sort key %q (valid: date, id, subject)", sortKey))
	}
	if maxDepth <= 0 {
		maxDepth = cfg.MaxDepth
	}

	var msgs []model.Message
	if len(args) > 0 {
		var err error
		msgs, _, err = readMailboxes(args, readOptions{Mailbox: mailbox, Charset: encodingOrConfig(encoding), Lenient: lenient})
		if err != nil {
			exitErr("read mailbox", err)
		}
	} else {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		msgs, err = s.Messages(cmd.Context(), mailbox)
		if err != nil {
			exitErr("load messages", err)
		}
	}

	trees, err := threading.Thread(store.ToThreading(msgs), threading.Options{
		SkipSubjectGrouping: noSubject || !cfg.GroupBySubject,
		MaxDepth:            maxDepth,
		Logger:              logger.Log,
	})
	if err != nil {
		exitErr("thread", err)
	}

	if collapse {
		for i, tr := range trees {
			trees[i] = tr.CollapseEmpty()
		}
	}
	if sortKey != string(threading.SortByDate) || reverse {
		trees, err = threading.SortThreads(trees, threading.SortParams{
			Key:     threading.SortKey(sortKey),
			Reverse: reverse,
		})
		if err != nil {
			exitErr("sort", err)
		}
	}

	if textOutput() {
		writeTrees(os.Stdout, trees)
		return
	}
	printJSON(trees)
}

func encodingOrConfig(encoding string) string {
	if encoding == "" {
		return cfg.Encoding
	}
	return encoding
}
