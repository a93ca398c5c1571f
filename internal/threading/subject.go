package threading

import (
	"log/slog"
	"regexp"
	"strings"
)

// replyPrefix matches one leading reply/forward marker or list tag, e.g.
// "re:", "Re[2]:", "fwd:", "[golang-dev]".
var replyPrefix = regexp.MustCompile(`^(?:(?:re|fwd?|aw|sv)\s*(?:\[\d+\]|\(\d+\))?\s*:|\[[^\]]*\])\s*`)

// NormalizeSubject lower-cases s, trims it and strips leading reply markers
// and bracketed tags until none remain.
func NormalizeSubject(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for {
		loc := replyPrefix.FindStringIndex(s)
		if loc == nil || loc[1] == 0 {
			return s
		}
		s = strings.TrimSpace(s[loc[1]:])
	}
}

// subjectOf returns n's subject, or that of its first descendant carrying
// a message when n is a placeholder.
func (t *table) subjectOf(n int) string {
	stack := []int{n}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if m := t.nodes[c].msg; m != nil {
			return m.Subject
		}
		kids := t.nodes[c].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return ""
}

// groupBySubject merges roots sharing a normalized subject under one
// surviving root and returns the remaining roots in their original order.
// The survivor is the first placeholder of the group, or the first root
// when the group has none. Roots with an empty normalized subject are
// left alone.
func (t *table) groupBySubject(roots []int) []int {
	groups := make(map[string][]int)
	var keys []string
	for _, r := range roots {
		key := NormalizeSubject(t.subjectOf(r))
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], r)
	}

	absorbed := make(map[int]bool)
	for _, key := range keys {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		survivor := members[0]
		for _, m := range members {
			if t.nodes[m].msg == nil {
				survivor = m
				break
			}
		}
		for _, m := range members {
			if m == survivor {
				continue
			}
			if t.nodes[m].msg == nil && t.nodes[survivor].msg == nil {
				kids := append([]int(nil), t.nodes[m].children...)
				for _, c := range kids {
					t.attach(survivor, c)
				}
			} else {
				t.attach(survivor, m)
			}
			absorbed[m] = true
		}
		t.log.Debug("subject group merged",
			slog.String("subject", key),
			slog.String("root", t.nodes[survivor].id),
			slog.Int("merged", len(members)-1))
	}

	out := roots[:0:0]
	for _, r := range roots {
		if !absorbed[r] {
			out = append(out, r)
		}
	}
	return out
}
