package store

import (
	"context"

	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/threading"
)

// ThreadParams holds parameters for threading a stored mailbox.
type ThreadParams struct {
	Mailbox string
	Options threading.Options
}

// ToThreading converts archive records to threading input. Each result's
// Payload points at the matching element of msgs.
func ToThreading(msgs []model.Message) []*threading.Message {
	out := make([]*threading.Message, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		tm := &threading.Message{
			ID:         m.MessageID,
			References: m.References,
			Subject:    m.Subject,
			Payload:    m,
		}
		if m.Date != nil {
			tm.Date = *m.Date
		}
		out[i] = tm
	}
	return out
}

// Threads threads every active message of a mailbox in import order.
func (s *SQLiteStore) Threads(ctx context.Context, p ThreadParams) ([]*threading.Tree, error) {
	msgs, err := s.Messages(ctx, p.Mailbox)
	if err != nil {
		return nil, err
	}
	return threading.Thread(ToThreading(msgs), p.Options)
}
