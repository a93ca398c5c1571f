package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string         `json:"db_path"`
	DBSizeBytes    int64          `json:"db_size_bytes"`
	TotalMessages  int            `json:"total_messages"`
	ActiveMessages int            `json:"active_messages"`
	TotalRefs      int            `json:"total_refs"`
	Mailboxes      []MailboxStats `json:"mailboxes"`
}

// MailboxStats holds per-mailbox counts.
type MailboxStats struct {
	Mailbox    string `json:"mailbox"`
	Count      int    `json:"count"`
	MessageIDs int    `json:"message_ids"`
	Subjects   int    `json:"subjects"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&st.TotalMessages)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE deleted_at IS NULL`).Scan(&st.ActiveMessages)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM message_refs`).Scan(&st.TotalRefs)

	mailboxes, err := s.ListMailboxes(ctx)
	if err != nil {
		return st, err
	}
	st.Mailboxes = mailboxes
	return st, nil
}

// ListMailboxes returns active message counts per mailbox, largest first.
func (s *SQLiteStore) ListMailboxes(ctx context.Context) ([]MailboxStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mailbox, COUNT(*) AS cnt, COUNT(DISTINCT message_id), COUNT(DISTINCT NULLIF(norm_subject, ''))
		FROM messages WHERE deleted_at IS NULL
		GROUP BY mailbox ORDER BY cnt DESC, mailbox`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MailboxStats{}
	for rows.Next() {
		var mb MailboxStats
		if err := rows.Scan(&mb.Mailbox, &mb.Count, &mb.MessageIDs, &mb.Subjects); err != nil {
			return nil, err
		}
		out = append(out, mb)
	}
	return out, rows.Err()
}
