package store

import (
	"context"
	"testing"
	"time"

	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/threading"
)

func TestThreads(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	d1 := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.Add(time.Hour)
	s.Put(ctx, PutParams{MessageID: "c@x", Subject: "Re: plan", References: []string{"a@x", "b@x"}, Date: &d2})
	s.Put(ctx, PutParams{MessageID: "a@x", Subject: "plan", Date: &d1})
	s.Put(ctx, PutParams{MessageID: "z@x", Subject: "other"})
	s.Put(ctx, PutParams{Mailbox: "lists", MessageID: "q@x", Subject: "plan"})

	trees, err := s.Threads(ctx, ThreadParams{Options: threading.DefaultOptions()})
	if err != nil {
		t.Fatalf("threads: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(trees))
	}

	root := trees[0]
	if root.ID != "a@x" || len(root.Children) != 1 {
		t.Fatalf("unexpected first thread: %s with %d children", root.ID, len(root.Children))
	}
	// b@x was never stored, so c@x hangs directly off a@x.
	if got := root.Children[0].ID; got != "c@x" {
		t.Errorf("expected c@x under a@x, got %s", got)
	}
	rec, ok := root.Children[0].Message.Payload.(*model.Message)
	if !ok || rec.Subject != "Re: plan" {
		t.Errorf("expected payload to carry the stored record, got %#v", root.Children[0].Message.Payload)
	}
	if trees[1].ID != "z@x" {
		t.Errorf("expected undated thread last, got %s", trees[1].ID)
	}
}

func TestToThreading(t *testing.T) {
	d := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	msgs := []model.Message{
		{MessageID: "a@x", Subject: "s", Date: &d, References: []string{"r@x"}},
		{MessageID: "b@x"},
	}
	out := ToThreading(msgs)
	if len(out) != 2 {
		t.Fatalf("expected 2, got %d", len(out))
	}
	if out[0].ID != "a@x" || !out[0].Date.Equal(d) || out[0].References[0] != "r@x" {
		t.Errorf("unexpected conversion: %+v", out[0])
	}
	if !out[1].Date.IsZero() {
		t.Errorf("expected zero date, got %v", out[1].Date)
	}
	if out[1].Payload.(*model.Message) != &msgs[1] {
		t.Error("payload should point into the input slice")
	}
}
