// Package mailparse extracts the threading headers of RFC 5322 messages.
package mailparse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/rcliao/mailthread/internal/model"
)

// ErrNoMessageID is returned for messages without a usable Message-ID.
var ErrNoMessageID = errors.New("message has no Message-ID header")

var msgIDRe = regexp.MustCompile(`<([^>]+)>`)

var wordDecoder = &mime.WordDecoder{CharsetReader: CharsetReader}

// Options configures parsing.
type Options struct {
	// RawHeaders keeps RFC 2047 encoded words in Subject and From as-is.
	RawHeaders bool
}

// Parse reads the header of one message. The body is never read. The
// returned record has MessageID, References, Subject, From and Date set.
func Parse(r io.Reader, opts Options) (*model.Message, error) {
	m, err := mail.ReadMessage(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := m.Header

	id := MessageID(h.Get("Message-ID"))
	if id == "" {
		return nil, ErrNoMessageID
	}

	refs := Unique(MessageIDs(strings.Join(h["References"], " ")))
	if parent := MessageID(h.Get("In-Reply-To")); parent != "" && !slices.Contains(refs, parent) {
		refs = append(refs, parent)
	}

	out := &model.Message{
		MessageID:  id,
		References: refs,
		Subject:    decode(h.Get("Subject"), opts),
		From:       decode(h.Get("From"), opts),
	}
	if d, err := h.Date(); err == nil {
		d = d.UTC()
		out.Date = &d
	}
	return out, nil
}

// ParseBytes is Parse over an in-memory message.
func ParseBytes(raw []byte, opts Options) (*model.Message, error) {
	return Parse(bytes.NewReader(raw), opts)
}

// MessageID returns the first <id> in s without its angle brackets.
func MessageID(s string) string {
	m := msgIDRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// MessageIDs returns every <id> in s, in order.
func MessageIDs(s string) []string {
	matches := msgIDRe.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if id := strings.TrimSpace(m[1]); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Unique drops repeated ids, keeping the first occurrence.
func Unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// CharsetReader decodes text in the named charset to UTF-8.
func CharsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func decode(s string, opts Options) string {
	if opts.RawHeaders {
		return s
	}
	out, err := wordDecoder.DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}
