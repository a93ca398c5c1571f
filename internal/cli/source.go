package cli

import (
	"errors"
	"fmt"

	"github.com/rcliao/mailthread/internal/logger"
	"github.com/rcliao/mailthread/internal/mailparse"
	"github.com/rcliao/mailthread/internal/mbox"
	"github.com/rcliao/mailthread/internal/model"
)

// readOptions controls how mbox files are turned into records.
type readOptions struct {
	Mailbox    string
	Charset    string
	Lenient    bool
	RawHeaders bool
}

// readMailboxes splits and parses mbox files in order. Messages that fail
// to parse are skipped with a warning and counted.
func readMailboxes(paths []string, opts readOptions) ([]model.Message, int, error) {
	var out []model.Message
	skipped := 0
	for _, path := range paths {
		entries, err := mbox.SplitFile(path, opts.Charset, mbox.Options{Lenient: opts.Lenient})
		if err != nil {
			return nil, skipped, fmt.Errorf("%s: %w", path, err)
		}
		for _, e := range entries {
			m, err := mailparse.ParseBytes(e.Raw, mailparse.Options{RawHeaders: opts.RawHeaders})
			if err != nil {
				reason := "malformed header"
				if errors.Is(err, mailparse.ErrNoMessageID) {
					reason = "no message id"
				}
				logger.Log.Warn("skipping message", "file", path, "line", e.StartLine, "reason", reason, "err", err)
				skipped++
				continue
			}
			m.Mailbox = opts.Mailbox
			m.Source = fmt.Sprintf("%s:%d", path, e.StartLine)
			out = append(out, *m)
		}
		logger.Log.Info("read mailbox", "file", path, "entries", len(entries))
	}
	return out, skipped, nil
}
