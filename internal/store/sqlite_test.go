package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	date := time.Date(2010, time.January, 7, 11, 55, 58, 0, time.UTC)
	msg, err := s.Put(ctx, PutParams{
		MessageID:  "m2@x",
		References: []string{"m0@x", "m1@x"},
		Subject:    "Re: hello",
		From:       "bob@example.com",
		Date:       &date,
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if msg.ID == "" {
		t.Error("expected non-empty ID")
	}
	if msg.Mailbox != "inbox" {
		t.Errorf("expected default mailbox, got %q", msg.Mailbox)
	}

	got, err := s.Get(ctx, GetParams{MessageID: "m2@x"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	m := got[0]
	if m.Subject != "Re: hello" || m.From != "bob@example.com" {
		t.Errorf("unexpected headers: %+v", m)
	}
	if strings.Join(m.References, ",") != "m0@x,m1@x" {
		t.Errorf("expected references in header order, got %v", m.References)
	}
	if m.Date == nil || !m.Date.Equal(date) {
		t.Errorf("expected date %v, got %v", date, m.Date)
	}
	if m.Seq != msg.Seq {
		t.Errorf("expected seq %d, got %d", msg.Seq, m.Seq)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), GetParams{MessageID: "missing@x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_History(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{MessageID: "dup@x", Subject: "first"})
	s.Put(ctx, PutParams{MessageID: "dup@x", Subject: "second"})

	latest, _ := s.Get(ctx, GetParams{MessageID: "dup@x"})
	if len(latest) != 1 || latest[0].Subject != "second" {
		t.Errorf("expected latest copy, got %+v", latest)
	}

	hist, _ := s.Get(ctx, GetParams{MessageID: "dup@x", History: true})
	if len(hist) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(hist))
	}
	if hist[0].Subject != "second" || hist[1].Subject != "first" {
		t.Errorf("expected newest first, got %q, %q", hist[0].Subject, hist[1].Subject)
	}
}

func TestPut_EmptyMessageID(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Put(context.Background(), PutParams{Subject: "x"}); err == nil {
		t.Error("expected error for empty message id")
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"c@x", "a@x", "b@x"} {
		s.Put(ctx, PutParams{MessageID: id})
	}
	s.Put(ctx, PutParams{Mailbox: "other", MessageID: "z@x"})

	all, err := s.List(ctx, ListParams{Mailbox: "inbox"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, m := range all {
		ids = append(ids, m.MessageID)
	}
	if strings.Join(ids, ",") != "c@x,a@x,b@x" {
		t.Errorf("expected import order, got %v", ids)
	}

	page, _ := s.List(ctx, ListParams{Limit: 2, Offset: 1})
	if len(page) != 2 || page[0].MessageID != "a@x" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestRm_Soft(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{MessageID: "a@x"})
	if err := s.Rm(ctx, RmParams{MessageID: "a@x"}); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := s.Get(ctx, GetParams{MessageID: "a@x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after rm, got %v", err)
	}
	if err := s.Rm(ctx, RmParams{MessageID: "a@x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second rm, got %v", err)
	}

	st, _ := s.Stats(ctx, "")
	if st.TotalMessages != 1 || st.ActiveMessages != 0 {
		t.Errorf("expected 1 total 0 active, got %d/%d", st.TotalMessages, st.ActiveMessages)
	}
}

func TestRm_HardDropsRefs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, PutParams{MessageID: "b@x", References: []string{"a@x"}})
	if err := s.Rm(ctx, RmParams{MessageID: "b@x", Hard: true}); err != nil {
		t.Fatalf("rm: %v", err)
	}

	st, _ := s.Stats(ctx, "")
	if st.TotalMessages != 0 || st.TotalRefs != 0 {
		t.Errorf("expected empty tables, got %d messages %d refs", st.TotalMessages, st.TotalRefs)
	}
}
