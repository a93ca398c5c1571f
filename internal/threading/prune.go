package threading

import "log/slog"

// pruneAll prunes every root and returns the containers that replace them.
func (t *table) pruneAll(roots []int) []int {
	out := make([]int, 0, len(roots))
	for _, r := range roots {
		out = append(out, t.prune(r, 0)...)
	}
	return out
}

// prune rewrites the subtree under n bottom-up and returns what takes n's
// place in its parent: nothing for an empty placeholder, the only child of
// a single-child placeholder, n itself otherwise. Below maxDepth the
// subtree is returned untouched.
func (t *table) prune(n, depth int) []int {
	if depth > t.maxDepth {
		t.log.Debug("prune depth exceeded", slog.String("id", t.nodes[n].id))
		return []int{n}
	}

	kids := t.nodes[n].children
	t.nodes[n].children = nil
	for _, c := range kids {
		t.nodes[c].parent = noParent
		for _, r := range t.prune(c, depth+1) {
			t.attach(n, r)
		}
	}

	if t.nodes[n].msg != nil {
		return []int{n}
	}
	switch len(t.nodes[n].children) {
	case 0:
		return nil
	case 1:
		only := t.nodes[n].children[0]
		t.detach(only)
		return []int{only}
	}
	return []int{n}
}
