package threading

import (
	"fmt"
	"sort"
	"strings"
)

// build copies the arena subtree under n into a Tree, computing Earliest
// and ordering children by it.
func (t *table) build(n int, parent *Tree) *Tree {
	c := &t.nodes[n]
	out := &Tree{
		ID:       c.id,
		Message:  c.msg,
		Parent:   parent,
		Children: make([]*Tree, 0, len(c.children)),
	}
	if c.msg != nil {
		out.Earliest = c.msg.Date
	}
	for _, k := range c.children {
		child := t.build(k, out)
		if earlier(child.Earliest, out.Earliest) {
			out.Earliest = child.Earliest
		}
		out.Children = append(out.Children, child)
	}
	sortByEarliest(out.Children)
	return out
}

func (t *table) finalize(roots []int) []*Tree {
	out := make([]*Tree, 0, len(roots))
	for _, r := range roots {
		out = append(out, t.build(r, nil))
	}
	sortByEarliest(out)
	return out
}

// SortKey selects what SortThreads orders root trees by.
type SortKey string

const (
	SortByDate    SortKey = "date"
	SortByID      SortKey = "id"
	SortBySubject SortKey = "subject"
)

// ValidSortKeys are the keys SortThreads accepts.
var ValidSortKeys = map[SortKey]bool{
	SortByDate:    true,
	SortByID:      true,
	SortBySubject: true,
}

// SortParams holds parameters for SortThreads.
type SortParams struct {
	Key     SortKey
	Reverse bool
	// Missing stands in for the id or subject of a placeholder root.
	Missing string
}

// SortThreads returns the roots reordered by p.Key. The sort is stable, so
// equal keys keep their threading order. Children are not reordered.
func SortThreads(threads []*Tree, p SortParams) ([]*Tree, error) {
	key := p.Key
	if key == "" {
		key = SortByDate
	}
	if !ValidSortKeys[key] {
		return nil, fmt.Errorf("invalid sort key %q (valid: date, id, subject)", key)
	}

	out := append([]*Tree(nil), threads...)
	value := func(t *Tree) string {
		if t.Message == nil {
			return p.Missing
		}
		if key == SortByID {
			return t.Message.ID
		}
		return strings.ToLower(t.Message.Subject)
	}

	var less func(a, b *Tree) bool
	switch key {
	case SortByDate:
		less = func(a, b *Tree) bool { return earlier(a.Earliest, b.Earliest) }
	default:
		less = func(a, b *Tree) bool { return value(a) < value(b) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if p.Reverse {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}
