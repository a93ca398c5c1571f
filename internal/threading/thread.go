// Package threading groups messages into conversation trees from their
// Message-IDs, reference chains and subjects, following Jamie Zawinski's
// mail threading algorithm (https://www.jwz.org/doc/threading.html).
//
// Thread runs five passes over an arena of containers, one per id seen:
// linking each message along its reference chain, collecting the
// parentless containers, pruning placeholders that add no structure,
// merging roots that share a normalized subject, and sorting the result.
// Malformed input (unknown ids, cycles, contradicting chains) never fails
// a run; it only changes the shape of the forest.
package threading

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds ancestor walks and pruning recursion.
const DefaultMaxDepth = 1024

// ErrNilMessage is returned when the input holds a nil message.
var ErrNilMessage = errors.New("nil message")

// Options configures a threading run. The zero value is ready to use.
type Options struct {
	// SkipSubjectGrouping leaves roots with equal subjects apart.
	SkipSubjectGrouping bool
	// MaxDepth caps ancestor walks and pruning depth; 0 means DefaultMaxDepth.
	MaxDepth int
	// Logger receives debug records about refused links and merges.
	Logger *slog.Logger
}

// DefaultOptions returns the options used for a zero Options value.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Thread arranges msgs into a sorted forest of trees. Later messages with a
// repeated id replace the earlier message but keep its links. An empty
// input gives an empty forest.
func Thread(msgs []*Message, opts Options) ([]*Tree, error) {
	for i, m := range msgs {
		if m == nil {
			return nil, fmt.Errorf("message %d: %w", i, ErrNilMessage)
		}
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := newTable(len(msgs), opts.MaxDepth, log)
	for _, m := range msgs {
		t.ingest(m)
	}

	roots := t.roots()
	roots = t.pruneAll(roots)
	if !opts.SkipSubjectGrouping {
		roots = t.groupBySubject(roots)
	}
	out := t.finalize(roots)

	log.Debug("threaded",
		slog.Int("messages", len(msgs)),
		slog.Int("containers", len(t.nodes)),
		slog.Int("threads", len(out)))
	return out, nil
}
