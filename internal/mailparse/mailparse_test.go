package mailparse

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/mailthread/internal/model"
)

func parse(t *testing.T, text string, opts Options) (*model.Message, error) {
	t.Helper()
	return Parse(strings.NewReader(text), opts)
}

func TestParse_Basic(t *testing.T) {
	m, err := parse(t, "Subject: random\n"+
		"Message-ID: <message1>\n"+
		"References: <ref1> <ref2> <ref1>\n"+
		"In-Reply-To: <reply>\n"+
		"\n"+
		"Body.", Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.MessageID != "message1" {
		t.Errorf("expected message1, got %q", m.MessageID)
	}
	if m.Subject != "random" {
		t.Errorf("expected 'random', got %q", m.Subject)
	}
	if strings.Join(m.References, ",") != "ref1,ref2,reply" {
		t.Errorf("expected ref1,ref2,reply, got %v", m.References)
	}
	if m.Date != nil {
		t.Errorf("expected no date, got %v", m.Date)
	}
}

func TestParse_InReplyToAlreadyReferenced(t *testing.T) {
	m, err := parse(t, "Message-ID: <c@x>\n"+
		"References: <a@x>\n"+
		"  <b@x>\n"+
		"In-Reply-To: <b@x> (Bob's message)\n"+
		"\n", Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if strings.Join(m.References, ",") != "a@x,b@x" {
		t.Errorf("expected a@x,b@x, got %v", m.References)
	}
}

func TestParse_NoMessageID(t *testing.T) {
	_, err := parse(t, "Subject: random\n\nBody.", Options{})
	if !errors.Is(err, ErrNoMessageID) {
		t.Errorf("expected ErrNoMessageID, got %v", err)
	}
}

func TestParse_EncodedHeaders(t *testing.T) {
	text := "Subject: =?UTF-8?B?0L/QtdGA0LXQutC70LDQtA==?=\n" +
		"From: =?koi8-r?B?0NLJ18XU?= <ivan@example.com>\n" +
		"Message-ID: <message1>\n\n"

	m, err := parse(t, text, Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Subject != "переклад" {
		t.Errorf("expected decoded subject, got %q", m.Subject)
	}
	if m.From != "привет <ivan@example.com>" {
		t.Errorf("expected decoded from, got %q", m.From)
	}

	raw, err := parse(t, text, Options{RawHeaders: true})
	if err != nil {
		t.Fatalf("parse raw: %v", err)
	}
	if raw.Subject != "=?UTF-8?B?0L/QtdGA0LXQutC70LDQtA==?=" {
		t.Errorf("expected raw subject, got %q", raw.Subject)
	}
}

func TestParse_Date(t *testing.T) {
	m, err := parse(t, "Message-ID: <d@x>\nDate: Thu, 7 Jan 2010 12:55:58 +0100\n\n", Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2010, time.January, 7, 11, 55, 58, 0, time.UTC)
	if m.Date == nil || !m.Date.Equal(want) {
		t.Errorf("expected %v, got %v", want, m.Date)
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"1", "2", "3", "1", "2", "3"})
	if strings.Join(got, ",") != "1,2,3" {
		t.Errorf("expected 1,2,3, got %v", got)
	}
}

func TestMessageIDs(t *testing.T) {
	got := MessageIDs("<a@x> junk <b@x><c@x> <>")
	if strings.Join(got, ",") != "a@x,b@x,c@x" {
		t.Errorf("expected a@x,b@x,c@x, got %v", got)
	}
	if MessageID("no brackets") != "" {
		t.Error("expected empty id")
	}
}
