// Package mbox splits mbox-format mailboxes into raw messages.
package mbox

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Delimiter matches an mbox envelope line, e.g.
// "From jonathan@example.com Thu Jan  7 12:55:58 2010".
var Delimiter = regexp.MustCompile(`^From \S+\s+\w{3} \w{3}\s+\d{1,2} \d{1,2}:\d{2}:\d{2}(?: [+-]\d{4}| [A-Z]{3,4})? \d{4}`)

var escapedFrom = regexp.MustCompile(`^>+From `)

// Options configures splitting.
type Options struct {
	// Lenient accepts any line starting with "From " as a delimiter.
	Lenient bool
}

// Entry is one message cut out of a mailbox.
type Entry struct {
	// Envelope is the delimiter line without the leading "From ".
	Envelope  string
	Raw       []byte
	StartLine int
	EndLine   int
}

// Split reads a whole mailbox and returns its messages in order. Text
// before the first delimiter is ignored.
func Split(r io.Reader, opts Options) ([]Entry, error) {
	br := bufio.NewReader(r)
	var (
		entries []Entry
		cur     *Entry
		buf     bytes.Buffer
		lineNum int
	)

	flush := func() {
		if cur == nil {
			return
		}
		cur.Raw = append([]byte(nil), buf.Bytes()...)
		entries = append(entries, *cur)
		cur = nil
		buf.Reset()
	}

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lineNum++
			switch {
			case isDelimiter(line, opts):
				flush()
				cur = &Entry{
					Envelope:  string(bytes.TrimSpace(line[len("From "):])),
					StartLine: lineNum,
					EndLine:   lineNum,
				}
			case cur != nil:
				if escapedFrom.Match(line) {
					line = line[1:]
				}
				buf.Write(line)
				cur.EndLine = lineNum
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read mbox line %d: %w", lineNum+1, err)
		}
	}
	flush()

	return entries, nil
}

func isDelimiter(line []byte, opts Options) bool {
	if opts.Lenient {
		return bytes.HasPrefix(line, []byte("From "))
	}
	return Delimiter.Match(line)
}

// Open opens a mailbox file, transparently inflating gzip data and, when
// charset is set, decoding it to UTF-8.
func Open(path, charset string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	rc := &readCloser{Reader: br, closers: []io.Closer{f}}

	magic, _ := br.Peek(2)
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, zr)
	}

	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("unknown encoding %q: %w", charset, err)
		}
		rc.Reader = transform.NewReader(rc.Reader, enc.NewDecoder())
	}

	return rc, nil
}

// SplitFile opens and splits a mailbox file.
func SplitFile(path, charset string, opts Options) ([]Entry, error) {
	rc, err := Open(path, charset)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Split(rc, opts)
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
