package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/threading"
)

// writeTrees prints each tree in pre-order, one node per line, indented
// with "> " per level.
func writeTrees(w io.Writer, trees []*threading.Tree) {
	for _, tr := range trees {
		tr.Walk(func(n *threading.Tree, depth int) bool {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("> ", depth), nodeLabel(n))
			return true
		})
	}
}

func nodeLabel(n *threading.Tree) string {
	if n.IsPlaceholder() {
		return fmt.Sprintf("(missing) <%s>", n.ID)
	}
	label := fmt.Sprintf("%s <%s>", subjectOrDefault(n.Message.Subject), n.ID)
	if !n.Message.Date.IsZero() {
		label += " " + humanize.Time(n.Message.Date)
	}
	return label
}

// writeMessages prints one line per message: import sequence, id, subject.
func writeMessages(w io.Writer, msgs []model.Message) {
	for _, m := range msgs {
		fmt.Fprintf(w, "%s\t%s\t<%s>\t%s\n", humanize.Comma(m.Seq), m.Mailbox, m.MessageID, subjectOrDefault(m.Subject))
	}
}

func subjectOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(no subject)"
	}
	return s
}
