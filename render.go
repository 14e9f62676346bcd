package vellum

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Renderer converts Node trees into styled strings. The zero value joins
// lines with "\n"; set CRLF for raw-mode terminals that need "\r\n".
type Renderer struct {
	CRLF bool
}

func (r Renderer) lineBreak() string {
	if r.CRLF {
		return "\r\n"
	}
	return "\n"
}

// CursorInfo reports where the terminal cursor should be placed after the
// frame is drawn. RowFromEnd counts visual rows up from the last rendered
// row, which stays stable as history grows above the input.
type CursorInfo struct {
	Col        int
	RowFromEnd int
	Visible    bool
}

// RenderResult is a rendered tree plus its cursor position.
type RenderResult struct {
	Content string
	Cursor  CursorInfo
}

// RenderString renders node to a styled string at the given width using the
// default renderer. Rendering is pure and deterministic: the same tree and
// width always produce the same string, and every emitted line has a visible
// width of at most width. A width of 0 disables wrapping entirely.
func RenderString(node Node, width int) string {
	return Renderer{}.RenderString(node, width)
}

// RenderWithCursor renders node and additionally computes the cursor
// position. The cursor is visible iff the tree contains a focused Input.
func RenderWithCursor(node Node, width int) RenderResult {
	return Renderer{}.RenderWithCursor(node, width)
}

// RenderPlainString renders node and strips all ANSI styling from the result.
func RenderPlainString(node Node, width int) string {
	return StripANSI(RenderString(node, width))
}

// RenderString renders node to a styled string at the given width.
func (r Renderer) RenderString(node Node, width int) string {
	return r.RenderWithCursor(node, width).Content
}

// RenderWithCursor renders node and computes the cursor position.
func (r Renderer) RenderWithCursor(node Node, width int) RenderResult {
	return r.RenderFiltered(node, width, nil)
}

// RenderFiltered renders node, skipping any Static subtree whose key the
// filter reports true for. The frame planner uses this to keep graduated
// history out of the live viewport. A nil filter skips nothing.
func (r Renderer) RenderFiltered(node Node, width int, skipKey func(string) bool) RenderResult {
	rd := r.renderNode(node, width, skipKey)

	res := RenderResult{Content: strings.Join(rd.lines, r.lineBreak())}
	if rd.cursor.visible && rd.cursor.line < len(rd.lines) {
		below := 0
		for _, line := range rd.lines[rd.cursor.line+1:] {
			below += VisualRows(line, width)
		}
		res.Cursor = CursorInfo{Col: rd.cursor.col, RowFromEnd: below, Visible: true}
	}
	return res
}

// cursorMark tracks the cursor during assembly: col is a visible-column
// offset, line an index into the still-unwrapped rendered lines.
type cursorMark struct {
	visible bool
	col     int
	line    int
}

// rendered is a node's output as individual lines. Nil lines means the node
// produced nothing and contributes no row to its parent.
type rendered struct {
	lines  []string
	cursor cursorMark
}

func (rd rendered) empty() bool {
	return len(rd.lines) == 0 && !rd.cursor.visible
}

func (r Renderer) renderNode(node Node, width int, skipKey func(string) bool) rendered {
	switch n := node.(type) {
	case EmptyNode, nil:
		return rendered{}

	case TextNode:
		return renderText(n, width)

	case InputNode:
		return renderInput(n, width)

	case SpinnerNode:
		line := string(n.Frame())
		if n.Label != "" {
			line += " " + n.Label
		}
		return rendered{lines: []string{truncateLine(n.Style.Apply(line), width)}}

	case PopupNode:
		return rendered{lines: renderPopupLines(n, width)}

	case FragmentNode:
		return r.mergeColumn(n.Children, width, 0, skipKey)

	case StaticNode:
		if skipKey != nil && skipKey(n.Key) {
			return rendered{}
		}
		return r.mergeColumn(n.Children, width, 0, skipKey)

	case OverlayNode:
		// Standalone renders show overlays in place; the frame planner
		// extracts them before rendering the viewport.
		return r.renderNode(n.Child, width, skipKey)

	case BoxNode:
		return r.renderBox(n, width, skipKey)
	}
	return rendered{}
}

func renderText(n TextNode, width int) rendered {
	var lines []string
	for _, line := range splitContentLines(n.Content) {
		for _, wrapped := range wrapLine(line, width) {
			lines = append(lines, n.Style.Apply(wrapped))
		}
	}
	return rendered{lines: lines}
}

func renderInput(n InputNode, width int) rendered {
	var line string
	if n.Value == "" {
		if n.Placeholder != "" {
			line = Style{Attr: AttrDim}.Apply(n.Placeholder)
		}
	} else {
		line = n.Style.Apply(n.Value)
	}
	rd := rendered{lines: []string{truncateLine(line, width)}}
	if n.Focused {
		runes := []rune(n.Value)
		idx := n.CursorIndex
		if idx < 0 {
			idx = 0
		}
		if idx > len(runes) {
			idx = len(runes)
		}
		col := runewidth.StringWidth(string(runes[:idx]))
		if width > 0 && col > width {
			col = width
		}
		rd.cursor = cursorMark{visible: true, col: col}
	}
	return rd
}

// mergeColumn stacks children vertically. Each pair of adjacent children is
// separated by one line break plus gap blank lines. Children that render
// nothing contribute no row and no separator.
func (r Renderer) mergeColumn(children []Node, width, gap int, skipKey func(string) bool) rendered {
	var out rendered
	for _, child := range children {
		if _, ok := child.(EmptyNode); ok {
			continue
		}
		cr := r.renderNode(child, width, skipKey)
		if cr.empty() {
			continue
		}
		if len(out.lines) > 0 {
			for g := 0; g < gap; g++ {
				out.lines = append(out.lines, "")
			}
		}
		if cr.cursor.visible {
			out.cursor = cursorMark{
				visible: true,
				col:     cr.cursor.col,
				line:    len(out.lines) + cr.cursor.line,
			}
		}
		out.lines = append(out.lines, cr.lines...)
	}
	return out
}

// rowChild is a measured row participant.
type rowChild struct {
	lines  []string
	cursor cursorMark
	width  int
	flex   bool
	weight int
}

// mergeRow places children left to right. Fixed children render at their
// reserved width, content children at their natural width, and flex children
// share the remaining columns by weight (the first flex child absorbs the
// integer remainder).
func (r Renderer) mergeRow(children []Node, width int, skipKey func(string) bool) rendered {
	items := make([]rowChild, 0, len(children))
	used := 0
	totalWeight := 0

	for _, child := range children {
		if _, ok := child.(EmptyNode); ok {
			continue
		}
		size := nodeSize(child)
		if w, ok := size.FixedSize(); ok {
			cr := r.renderNode(child, w, skipKey)
			for i := range cr.lines {
				cr.lines[i] = truncateLine(cr.lines[i], w)
			}
			items = append(items, rowChild{lines: cr.lines, cursor: cr.cursor, width: w})
			used += w
			continue
		}
		if w, ok := size.FlexWeight(); ok {
			items = append(items, rowChild{flex: true, weight: w})
			totalWeight += w
			continue
		}
		cr := r.renderNode(child, width, skipKey)
		cw := 0
		for _, line := range cr.lines {
			if w := VisibleWidth(line); w > cw {
				cw = w
			}
		}
		items = append(items, rowChild{lines: cr.lines, cursor: cr.cursor, width: cw})
		used += cw
	}

	// Distribute remaining columns to flex children.
	if totalWeight > 0 {
		remaining := width - used
		if remaining < 0 {
			remaining = 0
		}
		distributed := 0
		first := -1
		for i := range items {
			if !items[i].flex {
				continue
			}
			items[i].width = remaining * items[i].weight / totalWeight
			distributed += items[i].width
			if first < 0 {
				first = i
			}
		}
		items[first].width += remaining - distributed
		for i := range items {
			if !items[i].flex {
				continue
			}
			// A zero-cell allotment emits nothing: width 0 would be the
			// no-wrap sentinel and let the child overflow its slot.
			if items[i].width == 0 {
				continue
			}
			cr := r.renderNode(flexChild(children, i), items[i].width, skipKey)
			if len(cr.lines) == 0 {
				cr.lines = []string{strings.Repeat(" ", items[i].width)}
			}
			for j := range cr.lines {
				cr.lines[j] = padLine(truncateLine(cr.lines[j], items[i].width), items[i].width)
			}
			items[i].lines = cr.lines
			items[i].cursor = cr.cursor
		}
	}

	height := 0
	for _, it := range items {
		if len(it.lines) > height {
			height = len(it.lines)
		}
	}
	if height == 0 {
		return rendered{}
	}

	if height == 1 {
		return mergeRowSingleLine(items, width)
	}
	return mergeRowGrid(items, width, height)
}

// flexChild maps a measured item index back to its node, skipping the Empty
// children that were dropped during measurement.
func flexChild(children []Node, item int) Node {
	idx := 0
	for _, child := range children {
		if _, ok := child.(EmptyNode); ok {
			continue
		}
		if idx == item {
			return child
		}
		idx++
	}
	return Empty
}

func mergeRowSingleLine(items []rowChild, width int) rendered {
	var out rendered
	var line strings.Builder
	x := 0
	for _, it := range items {
		content := ""
		if len(it.lines) > 0 {
			content = it.lines[0]
		}
		if it.cursor.visible {
			out.cursor = cursorMark{visible: true, col: x + it.cursor.col}
		}
		line.WriteString(content)
		x += VisibleWidth(content)
	}
	result := line.String()
	if width > 0 {
		result = truncateLine(result, width)
	}
	out.lines = []string{result}
	return out
}

func mergeRowGrid(items []rowChild, width, height int) rendered {
	var out rendered
	x := 0
	cols := make([][]string, len(items))
	for i, it := range items {
		padded := make([]string, height)
		for j := 0; j < height; j++ {
			line := ""
			if j < len(it.lines) {
				line = it.lines[j]
			}
			padded[j] = padLine(truncateLine(line, it.width), it.width)
		}
		cols[i] = padded
		if it.cursor.visible {
			out.cursor = cursorMark{visible: true, col: x + it.cursor.col, line: it.cursor.line}
		}
		x += it.width
	}

	out.lines = make([]string, height)
	for j := 0; j < height; j++ {
		var row strings.Builder
		for i := range cols {
			row.WriteString(cols[i][j])
		}
		line := strings.TrimRight(row.String(), " ")
		if width > 0 {
			line = truncateLine(line, width)
		}
		out.lines[j] = line
	}
	return out
}

func (r Renderer) renderBox(b BoxNode, width int, skipKey func(string) bool) rendered {
	hasBorder := b.Border.IsSet()
	innerW := width
	if width > 0 {
		innerW = width - b.Margin.Horizontal() - b.Padding.Horizontal()
		if hasBorder {
			innerW -= 2
		}
		if innerW < 0 {
			innerW = 0
		}
	}

	var body rendered
	if b.Direction == Vertical {
		body = r.mergeColumn(b.Children, innerW, b.Gap, skipKey)
	} else {
		body = r.mergeRow(b.Children, innerW, skipKey)
	}
	lines := body.lines
	cur := body.cursor

	// Padding: left indent, top/bottom blank rows inside the border.
	if b.Padding.Left > 0 {
		indent := strings.Repeat(" ", b.Padding.Left)
		for i := range lines {
			if lines[i] != "" {
				lines[i] = indent + lines[i]
			}
		}
		cur.col += b.Padding.Left
	}
	lines = padVertical(lines, b.Padding.Top, b.Padding.Bottom)
	cur.line += b.Padding.Top

	if hasBorder {
		lines = r.drawBorder(lines, b, width)
		cur.col++
		cur.line++
	}

	// Margin sits outside the border.
	if b.Margin.Left > 0 {
		indent := strings.Repeat(" ", b.Margin.Left)
		for i := range lines {
			if lines[i] != "" {
				lines[i] = indent + lines[i]
			}
		}
		cur.col += b.Margin.Left
	}
	lines = padVertical(lines, b.Margin.Top, b.Margin.Bottom)
	cur.line += b.Margin.Top

	if width > 0 {
		for i := range lines {
			lines[i] = truncateLine(lines[i], width)
		}
	}

	if len(lines) == 0 && !cur.visible {
		return rendered{}
	}
	return rendered{lines: lines, cursor: cur}
}

func padVertical(lines []string, top, bottom int) []string {
	if top == 0 && bottom == 0 {
		return lines
	}
	out := make([]string, 0, len(lines)+top+bottom)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	out = append(out, lines...)
	for i := 0; i < bottom; i++ {
		out = append(out, "")
	}
	return out
}

// drawBorder frames the content lines. Bordered boxes span the full
// available width; with the no-wrap sentinel the frame hugs the content.
func (r Renderer) drawBorder(lines []string, b BoxNode, width int) []string {
	contentW := 0
	if width > 0 {
		contentW = width - b.Margin.Horizontal() - 2
		if contentW < 0 {
			contentW = 0
		}
	} else {
		for _, line := range lines {
			if w := VisibleWidth(line); w > contentW {
				contentW = w
			}
		}
		contentW += b.Padding.Right
	}

	if len(lines) == 0 {
		lines = []string{""}
	}

	bar := b.Style.Apply(string(b.Border.Vertical))
	out := make([]string, 0, len(lines)+2)
	out = append(out, b.Style.Apply(
		string(b.Border.TopLeft)+strings.Repeat(string(b.Border.Horizontal), contentW)+string(b.Border.TopRight)))
	for _, line := range lines {
		out = append(out, bar+padLine(line, contentW)+bar)
	}
	out = append(out, b.Style.Apply(
		string(b.Border.BottomLeft)+strings.Repeat(string(b.Border.Horizontal), contentW)+string(b.Border.BottomRight)))
	return out
}
