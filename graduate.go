package vellum

import "strings"

// GraduatedContent is one Static subtree staged for flushing to scrollback.
// Newline reports whether the entry starts on a fresh line; continuation
// entries append to the previous entry's last line instead.
type GraduatedContent struct {
	Key     string
	Content string
	Newline bool
}

// GraduationState remembers which Static keys have already been flushed to
// the terminal's native scrollback. Graduation is one-way: once a key is
// committed it is never re-emitted and never rendered in the live viewport,
// even if a later tree carries different content under the same key.
//
// State is threaded explicitly through the planner rather than held in a
// global, so independent screens (tests, split sessions) keep independent
// histories.
type GraduationState struct {
	graduated map[string]struct{}
	order     []string

	// pendingNewline is set when graduated output has been written without
	// a trailing line break. The next delta supplies the break, so deltas
	// compose into scrollback without blank-line gaps.
	pendingNewline bool
}

// NewGraduationState returns an empty state: no keys graduated, no line
// break pending.
func NewGraduationState() *GraduationState {
	return &GraduationState{graduated: make(map[string]struct{})}
}

// Graduated reports whether key has been committed to scrollback.
func (g *GraduationState) Graduated(key string) bool {
	_, ok := g.graduated[key]
	return ok
}

// Len returns the number of graduated keys.
func (g *GraduationState) Len() int {
	return len(g.order)
}

// Keys returns the graduated keys in the order they were committed.
func (g *GraduationState) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// PendingNewline reports whether the next delta must begin with a line
// break to terminate previously flushed output.
func (g *GraduationState) PendingNewline() bool {
	return g.pendingNewline
}

// Plan walks the tree in document order and returns the Static subtrees
// that are ready to graduate this frame: keyed, not yet committed, and not
// duplicated earlier in the same tree. Overlay subtrees are never scanned,
// so transient UI cannot leak into scrollback. Plan does not modify state;
// pair it with Commit after the delta has been written.
func (g *GraduationState) Plan(tree Node, r Renderer, width int) []GraduatedContent {
	var staged []GraduatedContent
	seen := make(map[string]struct{})
	g.planNode(tree, r, width, seen, &staged)
	return staged
}

func (g *GraduationState) planNode(node Node, r Renderer, width int, seen map[string]struct{}, staged *[]GraduatedContent) {
	switch n := node.(type) {
	case StaticNode:
		if n.Key == "" || g.Graduated(n.Key) {
			return
		}
		if _, dup := seen[n.Key]; dup {
			return
		}
		seen[n.Key] = struct{}{}
		content := r.RenderString(Fragment(n.Children...), width)
		*staged = append(*staged, GraduatedContent{
			Key:     n.Key,
			Content: content,
			Newline: !n.Continuation,
		})
	case BoxNode:
		for _, child := range n.Children {
			g.planNode(child, r, width, seen, staged)
		}
	case FragmentNode:
		for _, child := range n.Children {
			g.planNode(child, r, width, seen, staged)
		}
	case OverlayNode:
		// Overlays are transient and never graduate.
	}
}

// FormatStdoutDelta joins staged entries into the exact bytes to append to
// stdout this frame. The delta never ends with a line break; instead the
// returned flag records that one is pending, and the next frame's delta
// starts with it. Continuation entries suppress the break before them and
// append to the previous line. Entries that rendered to nothing contribute
// no bytes and leave the pending flag untouched.
func (g *GraduationState) FormatStdoutDelta(staged []GraduatedContent, lineBreak string) (string, bool) {
	var sb strings.Builder
	pending := g.pendingNewline
	for _, item := range staged {
		if item.Content == "" {
			continue
		}
		if pending && item.Newline {
			sb.WriteString(lineBreak)
		}
		sb.WriteString(item.Content)
		pending = true
	}
	return sb.String(), pending
}

// Commit marks the staged keys graduated and records the pending line
// break. Commit is the only mutation on GraduationState and is not undone;
// callers invoke it after the delta has actually been written.
func (g *GraduationState) Commit(staged []GraduatedContent, pendingNewline bool) {
	for _, item := range staged {
		if _, ok := g.graduated[item.Key]; ok {
			continue
		}
		g.graduated[item.Key] = struct{}{}
		g.order = append(g.order, item.Key)
	}
	g.pendingNewline = pendingNewline
}
