package store

import (
	"context"
	"strings"

	"github.com/rcliao/mailthread/internal/model"
)

// ExportAll returns all non-deleted messages in import order, optionally
// filtered by mailbox.
func (s *SQLiteStore) ExportAll(ctx context.Context, mailbox string) ([]model.Message, error) {
	where := []string{"m.deleted_at IS NULL"}
	args := []interface{}{}

	if mailbox != "" {
		where = append(where, "m.mailbox = ?")
		args = append(args, mailbox)
	}

	query := `SELECT ` + messageColumns + ` FROM messages m WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY m.seq`
	return s.query(ctx, query, args...)
}

// Import stores messages in order inside one transaction and tags them with
// a fresh batch id. Records without a mailbox go to mailbox, or the default
// mailbox when that is empty too.
func (s *SQLiteStore) Import(ctx context.Context, mailbox string, msgs []model.Message) (string, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, err
	}
	defer tx.Rollback()

	batch := s.newID()
	for _, m := range msgs {
		mb := m.Mailbox
		if mb == "" {
			mb = mailbox
		}
		_, err := s.insert(ctx, tx, PutParams{
			Mailbox:    mb,
			MessageID:  m.MessageID,
			References: m.References,
			Subject:    m.Subject,
			From:       m.From,
			Date:       m.Date,
			Source:     m.Source,
		}, batch)
		if err != nil {
			return "", 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", 0, err
	}
	return batch, len(msgs), nil
}
