package threading

import "log/slog"

// ingest adds msg to the table and links it along its reference chain.
func (t *table) ingest(msg *Message) {
	this := t.lookup(msg.ID)
	hadMessage := t.nodes[this].msg != nil
	t.nodes[this].msg = msg

	prev := noParent
	for _, ref := range chain(msg) {
		cur := t.lookup(ref)
		if prev != noParent {
			// Links between ancestors are guesses; the first one recorded stays.
			t.link(prev, cur, false)
		}
		prev = cur
	}

	switch {
	case prev != noParent:
		// The message's own immediate parent beats anything inferred earlier.
		if r := t.link(prev, this, true); r == wouldCycle {
			t.log.Debug("parent link skipped",
				slog.String("id", msg.ID),
				slog.String("parent", t.nodes[prev].id))
		}
	case !hadMessage:
		// No references at all: the message starts a thread.
		t.detach(this)
	}
}

// chain returns msg's references without self references or repeats.
func chain(msg *Message) []string {
	if len(msg.References) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(msg.References))
	out := make([]string, 0, len(msg.References))
	for _, ref := range msg.References {
		if ref == msg.ID {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// roots returns the parentless containers in table order. A container whose
// ancestry loops back to itself, or runs past maxDepth, is cut loose and
// counted as a root.
func (t *table) roots() []int {
	var roots []int
	for n := range t.nodes {
		p := t.nodes[n].parent
		if p == noParent {
			roots = append(roots, n)
			continue
		}
		if found, ok := t.reaches(p, n); found || !ok {
			t.log.Debug("broken ancestry cut",
				slog.String("id", t.nodes[n].id),
				slog.Bool("depth_exceeded", !ok))
			t.detach(n)
			roots = append(roots, n)
		}
	}
	return roots
}
