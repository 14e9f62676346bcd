package vellum

import "strings"

// anchorKind selects how an overlay is positioned over the viewport.
type anchorKind int

const (
	anchorFromTop anchorKind = iota
	anchorFromBottom
	anchorAt
)

// Anchor positions an overlay relative to the rendered viewport.
type Anchor struct {
	kind anchorKind
	Row  int
	Col  int
}

// FromTop anchors the overlay's first line at the given viewport row.
func FromTop(row int) Anchor {
	return Anchor{kind: anchorFromTop, Row: row}
}

// FromBottom anchors the overlay so its last line sits n rows above the
// bottom of the viewport. FromBottom(0) aligns it flush with the last row;
// a completion popup above a prompt typically uses FromBottom(1).
func FromBottom(n int) Anchor {
	return Anchor{kind: anchorFromBottom, Row: n}
}

// At anchors the overlay at an exact row and column. Overlay lines are
// spliced into the base lines at that column, preserving base content to
// either side.
func At(row, col int) Anchor {
	return Anchor{kind: anchorAt, Row: row, Col: col}
}

// ExtractOverlays removes every OverlayNode from the tree, returning the
// overlays in document order and a copy of the tree with each overlay
// replaced by Empty. The input tree is not modified. The planner calls this
// before graduation so overlay content can never reach scrollback.
func ExtractOverlays(node Node) ([]OverlayNode, Node) {
	var overlays []OverlayNode
	pruned := extractOverlays(node, &overlays)
	return overlays, pruned
}

func extractOverlays(node Node, out *[]OverlayNode) Node {
	switch n := node.(type) {
	case OverlayNode:
		*out = append(*out, n)
		return Empty
	case BoxNode:
		n.Children = extractOverlayChildren(n.Children, out)
		return n
	case FragmentNode:
		n.Children = extractOverlayChildren(n.Children, out)
		return n
	case StaticNode:
		n.Children = extractOverlayChildren(n.Children, out)
		return n
	default:
		return node
	}
}

func extractOverlayChildren(children []Node, out *[]OverlayNode) []Node {
	pruned := make([]Node, len(children))
	for i, child := range children {
		pruned[i] = extractOverlays(child, out)
	}
	return pruned
}

// CompositeOverlays draws each overlay onto the base viewport lines in
// order, later overlays painting over earlier ones. Lines outside the base
// are clipped; the result always has exactly len(base) lines.
func CompositeOverlays(base []string, overlays []OverlayNode, r Renderer, width int) []string {
	if len(overlays) == 0 {
		return base
	}
	out := make([]string, len(base))
	copy(out, base)
	for _, ov := range overlays {
		content := r.RenderString(ov.Child, width)
		if content == "" {
			continue
		}
		lines := splitLines(content, r.lineBreak())
		compositeOne(out, lines, ov.Anchor, width)
	}
	return out
}

func compositeOne(base, overlay []string, anchor Anchor, width int) {
	var start int
	switch anchor.kind {
	case anchorFromTop, anchorAt:
		start = anchor.Row
	case anchorFromBottom:
		start = len(base) - anchor.Row - len(overlay)
	}
	if start < 0 {
		// Clip rows that fall above the viewport.
		overlay = overlay[-start:]
		start = 0
	}
	for i, line := range overlay {
		row := start + i
		if row >= len(base) {
			break
		}
		if anchor.kind == anchorAt {
			base[row] = spliceLine(base[row], line, anchor.Col, width)
		} else {
			base[row] = line
		}
	}
}

// PadLinesTo fits lines into exactly n rows for a fixed-height viewport:
// short content is padded with blank rows below, and overflow is trimmed
// from the top so the most recent rows stay visible.
func PadLinesTo(lines []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(lines) > n {
		trimmed := make([]string, n)
		copy(trimmed, lines[len(lines)-n:])
		return trimmed
	}
	out := make([]string, n)
	copy(out, lines)
	return out
}

func splitLines(s, lineBreak string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, lineBreak)
}
