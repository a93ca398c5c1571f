package store

import (
	"context"
	"strings"

	"github.com/rcliao/mailthread/internal/model"
)

// refBatch bounds the number of placeholders in one IN clause.
const refBatch = 500

// loadRefs fills References on msgs, keeping header order.
func (s *SQLiteStore) loadRefs(ctx context.Context, msgs []model.Message) error {
	byID := make(map[string]*model.Message, len(msgs))
	for i := range msgs {
		byID[msgs[i].ID] = &msgs[i]
	}

	for start := 0; start < len(msgs); start += refBatch {
		end := min(start+refBatch, len(msgs))
		args := make([]interface{}, 0, end-start)
		for _, m := range msgs[start:end] {
			args = append(args, m.ID)
		}

		rows, err := s.db.QueryContext(ctx,
			`SELECT message_id, ref FROM message_refs
			 WHERE message_id IN (`+placeholders(len(args))+`)
			 ORDER BY message_id, pos`, args...)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id, ref string
			if err := rows.Scan(&id, &ref); err != nil {
				rows.Close()
				return err
			}
			if m := byID[id]; m != nil {
				m.References = append(m.References, ref)
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// Replies returns the active messages of a mailbox that name messageID in
// their References, in import order.
func (s *SQLiteStore) Replies(ctx context.Context, mailbox, messageID string) ([]model.Message, error) {
	return s.query(ctx, `SELECT `+messageColumns+` FROM messages m
		WHERE m.mailbox = ? AND m.deleted_at IS NULL
		  AND m.id IN (SELECT message_id FROM message_refs WHERE ref = ?)
		ORDER BY m.seq`, mailboxOrDefault(mailbox), messageID)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
