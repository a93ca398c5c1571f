// Package model defines the stored message record.
package model

import "time"

// Message is a parsed message as kept in the archive. Only the threading
// headers are stored; bodies are never read.
type Message struct {
	ID         string     `json:"id"`
	Mailbox    string     `json:"mailbox"`
	MessageID  string     `json:"message_id"`
	References []string   `json:"references,omitempty"`
	Subject    string     `json:"subject"`
	From       string     `json:"from,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Seq        int64      `json:"seq"`
	ImportedAt time.Time  `json:"imported_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	Source     string     `json:"source,omitempty"`
	Batch      string     `json:"batch,omitempty"`
}

// DefaultMailbox is used when no mailbox is named.
const DefaultMailbox = "inbox"
