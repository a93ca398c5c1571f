package threading

import "log/slog"

const noParent = -1

// container is an arena node. Links are indexes into table.nodes.
type container struct {
	id       string
	msg      *Message
	parent   int
	children []int
}

// table owns every container of one threading run. nodes is ordered by the
// first time each id was encountered.
type table struct {
	nodes    []container
	index    map[string]int
	maxDepth int
	log      *slog.Logger
}

func newTable(sizeHint, maxDepth int, log *slog.Logger) *table {
	return &table{
		nodes:    make([]container, 0, sizeHint),
		index:    make(map[string]int, sizeHint),
		maxDepth: maxDepth,
		log:      log,
	}
}

// lookup returns the container for id, creating a placeholder if needed.
func (t *table) lookup(id string) int {
	if n, ok := t.index[id]; ok {
		return n
	}
	t.nodes = append(t.nodes, container{id: id, parent: noParent})
	n := len(t.nodes) - 1
	t.index[id] = n
	return n
}

func (t *table) detach(child int) {
	p := t.nodes[child].parent
	if p == noParent {
		return
	}
	kids := t.nodes[p].children
	for i, c := range kids {
		if c == child {
			t.nodes[p].children = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	t.nodes[child].parent = noParent
}

// attach moves child under parent, appending it to parent's children.
func (t *table) attach(parent, child int) {
	t.detach(child)
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
}

// reaches walks up from n looking for target. ok is false when the walk
// gave up after maxDepth steps.
func (t *table) reaches(n, target int) (found, ok bool) {
	for steps := 0; n != noParent; n = t.nodes[n].parent {
		if n == target {
			return true, true
		}
		steps++
		if steps > t.maxDepth {
			return false, false
		}
	}
	return false, true
}

type linkResult int

const (
	linked linkResult = iota
	alreadyLinked
	keptExisting
	wouldCycle
)

func (r linkResult) String() string {
	switch r {
	case linked:
		return "linked"
	case alreadyLinked:
		return "already linked"
	case keptExisting:
		return "kept existing parent"
	case wouldCycle:
		return "would cycle"
	}
	return "unknown"
}

// link makes parent the parent of child. An existing different parent is
// replaced only when override is set. A link that would make child its own
// ancestor, or whose ancestor walk exceeds maxDepth, is refused.
func (t *table) link(parent, child int, override bool) linkResult {
	cur := t.nodes[child].parent
	if cur == parent {
		return alreadyLinked
	}
	if cur != noParent && !override {
		return keptExisting
	}
	if found, ok := t.reaches(parent, child); found || !ok {
		t.log.Debug("link refused",
			slog.String("parent", t.nodes[parent].id),
			slog.String("child", t.nodes[child].id),
			slog.Bool("depth_exceeded", !ok))
		return wouldCycle
	}
	t.attach(parent, child)
	return linked
}
