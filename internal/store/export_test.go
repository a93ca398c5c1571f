package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/mailthread/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	date := time.Date(2010, time.January, 7, 12, 0, 0, 0, time.UTC)
	src.Put(ctx, PutParams{MessageID: "a@x", Subject: "hello", Date: &date})
	src.Put(ctx, PutParams{MessageID: "b@x", Subject: "Re: hello", References: []string{"a@x"}})
	src.Put(ctx, PutParams{Mailbox: "lists", MessageID: "c@x", Subject: "news"})

	exported, err := src.ExportAll(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(exported))
	}

	dst := newTestStore(t)
	batch, n, err := dst.Import(ctx, "", exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 || batch == "" {
		t.Errorf("expected 3 imported with a batch id, got %d %q", n, batch)
	}

	inbox, _ := dst.ExportAll(ctx, "inbox")
	if len(inbox) != 2 {
		t.Fatalf("expected 2 inbox messages, got %d", len(inbox))
	}
	if inbox[1].MessageID != "b@x" || strings.Join(inbox[1].References, ",") != "a@x" {
		t.Errorf("references not preserved: %+v", inbox[1])
	}
	if inbox[0].Date == nil || !inbox[0].Date.Equal(date) {
		t.Errorf("date not preserved: %v", inbox[0].Date)
	}
	if inbox[0].Batch != batch {
		t.Errorf("expected batch %q, got %q", batch, inbox[0].Batch)
	}

	lists, _ := dst.ExportAll(ctx, "lists")
	if len(lists) != 1 || lists[0].MessageID != "c@x" {
		t.Errorf("expected mailbox kept, got %+v", lists)
	}
}

func TestImport_DefaultMailbox(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, _, err := s.Import(ctx, "archive", []model.Message{{MessageID: "a@x"}, {Mailbox: "keep", MessageID: "b@x"}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	mailboxes, _ := s.ListMailboxes(ctx)
	if len(mailboxes) != 2 {
		t.Fatalf("expected 2 mailboxes, got %d", len(mailboxes))
	}
	if mailboxes[0].Mailbox != "archive" || mailboxes[1].Mailbox != "keep" {
		t.Errorf("unexpected mailboxes: %+v", mailboxes)
	}
}

func TestImport_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, _, err := s.Import(ctx, "", []model.Message{{MessageID: "a@x"}, {MessageID: ""}})
	if err == nil {
		t.Fatal("expected error")
	}
	st, _ := s.Stats(ctx, "")
	if st.TotalMessages != 0 {
		t.Errorf("expected rollback, got %d messages", st.TotalMessages)
	}
}
