package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStats(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stats.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer s.Close()

	s.Put(ctx, PutParams{MessageID: "a@x", Subject: "Plan"})
	s.Put(ctx, PutParams{MessageID: "b@x", Subject: "Re: plan", References: []string{"a@x"}})
	s.Put(ctx, PutParams{MessageID: "b@x", Subject: "Re: plan", References: []string{"a@x"}})
	s.Put(ctx, PutParams{Mailbox: "lists", MessageID: "c@x"})

	st, err := s.Stats(ctx, path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.DBPath != path {
		t.Errorf("expected db path %q, got %q", path, st.DBPath)
	}
	if st.TotalMessages != 4 || st.TotalRefs != 2 {
		t.Errorf("expected 4 messages 2 refs, got %d/%d", st.TotalMessages, st.TotalRefs)
	}
	if len(st.Mailboxes) != 2 {
		t.Fatalf("expected 2 mailboxes, got %d", len(st.Mailboxes))
	}
	inbox := st.Mailboxes[0]
	if inbox.Mailbox != "inbox" || inbox.Count != 3 || inbox.MessageIDs != 2 || inbox.Subjects != 1 {
		t.Errorf("unexpected inbox stats: %+v", inbox)
	}
	if st.Mailboxes[1].Subjects != 0 {
		t.Errorf("empty subjects should not count, got %d", st.Mailboxes[1].Subjects)
	}
}
