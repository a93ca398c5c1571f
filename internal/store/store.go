// Package store provides the message archive interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/mailthread/internal/model"
)

// ErrNotFound is returned when no active message matches.
var ErrNotFound = errors.New("message not found")

// PutParams holds parameters for storing a message.
type PutParams struct {
	Mailbox    string
	MessageID  string
	References []string
	Subject    string
	From       string
	Date       *time.Time
	Source     string
}

// GetParams holds parameters for retrieving a message.
type GetParams struct {
	Mailbox   string
	MessageID string
	History   bool // every stored copy, newest first
}

// ListParams holds parameters for listing messages.
type ListParams struct {
	Mailbox string
	Limit   int
	Offset  int
}

// RmParams holds parameters for deleting a message.
type RmParams struct {
	Mailbox   string
	MessageID string
	Hard      bool
}

// Store defines the archive interface.
type Store interface {
	// Put stores one parsed message. Duplicate Message-IDs are kept as
	// separate copies in import order.
	Put(ctx context.Context, p PutParams) (*model.Message, error)

	// Get retrieves the latest copy of a message (all copies with History).
	Get(ctx context.Context, p GetParams) ([]model.Message, error)

	// List lists messages in import order.
	List(ctx context.Context, p ListParams) ([]model.Message, error)

	// Rm soft-deletes (or hard-deletes) every copy of a message.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
