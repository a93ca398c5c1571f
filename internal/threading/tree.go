package threading

import (
	"sort"
	"time"
)

// Message is one parsed message handed to Thread.
type Message struct {
	ID string `json:"id"`
	// References lists ancestor ids, oldest first and immediate parent last.
	References []string  `json:"references,omitempty"`
	Subject    string    `json:"subject"`
	Date       time.Time `json:"date,omitzero"`
	// Payload is carried through threading untouched.
	Payload any `json:"-"`
}

// Tree is one node of a threaded conversation. A nil Message marks a
// placeholder: an id that was referenced but never supplied.
type Tree struct {
	ID       string    `json:"id"`
	Message  *Message  `json:"message,omitempty"`
	Children []*Tree   `json:"children"`
	Earliest time.Time `json:"earliest,omitzero"`
	Parent   *Tree     `json:"-"`
}

// IsPlaceholder reports whether no message was supplied for this node.
func (t *Tree) IsPlaceholder() bool {
	return t.Message == nil
}

// Subject returns the node's subject, or the subject of the first
// descendant carrying a message when t is a placeholder.
func (t *Tree) Subject() string {
	var subject string
	t.Walk(func(n *Tree, _ int) bool {
		if n.Message == nil {
			return true
		}
		subject = n.Message.Subject
		return false
	})
	return subject
}

// Size counts the nodes in the subtree, t included.
func (t *Tree) Size() int {
	n := 0
	t.Walk(func(*Tree, int) bool {
		n++
		return true
	})
	return n
}

// Depth is the number of ancestors above t.
func (t *Tree) Depth() int {
	d := 0
	for p := t.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Root returns the top of the tree containing t.
func (t *Tree) Root() *Tree {
	r := t
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// HasDescendant reports whether n is t or appears below it.
func (t *Tree) HasDescendant(n *Tree) bool {
	found := false
	t.Walk(func(c *Tree, _ int) bool {
		if c == n {
			found = true
		}
		return !found
	})
	return found
}

// Flatten lists the subtree in pre-order.
func (t *Tree) Flatten() []*Tree {
	var out []*Tree
	t.Walk(func(n *Tree, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Walk visits the subtree in pre-order, passing each node's depth relative
// to t. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(n *Tree, depth int) bool) {
	type frame struct {
		n     *Tree
		depth int
	}
	stack := []frame{{t, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.n, f.depth) {
			return
		}
		for i := len(f.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.n.Children[i], f.depth + 1})
		}
	}
}

// CollapseEmpty replaces a placeholder root by its first child, which
// adopts the remaining children. Other trees are returned unchanged.
func (t *Tree) CollapseEmpty() *Tree {
	if t.Message != nil || len(t.Children) == 0 {
		return t
	}
	head, rest := t.Children[0], t.Children[1:]
	head.Parent = t.Parent
	for _, c := range rest {
		c.Parent = head
		if earlier(c.Earliest, head.Earliest) {
			head.Earliest = c.Earliest
		}
	}
	head.Children = append(head.Children, rest...)
	sortByEarliest(head.Children)
	t.Children = nil
	return head
}

// earlier orders dated values before undated ones; undated values tie.
func earlier(a, b time.Time) bool {
	return !a.IsZero() && (b.IsZero() || a.Before(b))
}

func sortByEarliest(ts []*Tree) {
	sort.SliceStable(ts, func(i, j int) bool {
		return earlier(ts[i].Earliest, ts[j].Earliest)
	})
}
