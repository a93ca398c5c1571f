package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testMbox = `From alice@example.com Thu Jan  7 12:55:58 2010
Message-ID: <a@example.com>
Subject: plan
Date: Thu, 7 Jan 2010 12:55:58 +0000

body
From bob@example.com Thu Jan  7 13:00:00 2010
Subject: no id here

body
From carol@example.com Thu Jan  7 13:05:00 2010
Message-ID: <c@example.com>
In-Reply-To: <a@example.com>
Subject: Re: plan

body
`

func TestReadMailboxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.mbox")
	if err := os.WriteFile(path, []byte(testMbox), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	msgs, skipped, err := readMailboxes([]string{path}, readOptions{Mailbox: "lists"})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", skipped)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].MessageID != "a@example.com" || msgs[0].Mailbox != "lists" || msgs[0].Date == nil {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[0].Source != path+":1" {
		t.Errorf("expected source %s:1, got %q", path, msgs[0].Source)
	}
	if strings.Join(msgs[1].References, ",") != "a@example.com" {
		t.Errorf("expected in-reply-to as reference, got %v", msgs[1].References)
	}
}

func TestReadMailboxes_MissingFile(t *testing.T) {
	_, _, err := readMailboxes([]string{filepath.Join(t.TempDir(), "nope")}, readOptions{})
	if err == nil {
		t.Error("expected error for missing file")
	}
}
