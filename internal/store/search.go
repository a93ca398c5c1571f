package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/threading"
)

// SearchParams holds parameters for searching messages.
type SearchParams struct {
	Mailbox string
	Query   string
	// Normalized matches messages whose normalized subject equals the
	// normalized query, i.e. every message of one subject thread.
	Normalized bool
	Limit      int
}

// Search finds messages whose subject or Message-ID contains the query.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Message, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"m.deleted_at IS NULL"}
	args := []interface{}{}

	if p.Mailbox != "" {
		where = append(where, "m.mailbox = ?")
		args = append(args, p.Mailbox)
	}
	if p.Normalized {
		key := threading.NormalizeSubject(p.Query)
		if key == "" {
			return nil, nil
		}
		where = append(where, "m.norm_subject = ?")
		args = append(args, key)
	} else {
		q := "%" + p.Query + "%"
		where = append(where, "(m.subject LIKE ? OR m.message_id LIKE ?)")
		args = append(args, q, q)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM messages m WHERE %s ORDER BY m.seq LIMIT ?`,
		messageColumns, strings.Join(where, " AND "))
	return s.query(ctx, query, args...)
}
