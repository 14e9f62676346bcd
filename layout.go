package vellum

// Rect is a resolved position and size in cells, relative to the root of the
// layout call.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layout mirrors the shape of the Node tree it was computed from, with a
// resolved Rect per node. A Layout is produced fresh by every call to
// CalculateLayout and is never mutated in place.
type Layout struct {
	Rect     Rect
	Children []*Layout
}

// CalculateLayout computes a Layout tree for node within the given available
// width and height. Column totals are not clamped to the viewport; callers
// clamp or scroll separately.
func CalculateLayout(node Node, availableWidth, availableHeight int) *Layout {
	return layoutNode(node, 0, 0, availableWidth, availableHeight)
}

func layoutNode(node Node, x, y, availW, availH int) *Layout {
	switch n := node.(type) {
	case EmptyNode, nil:
		return &Layout{Rect: Rect{X: x, Y: y}}

	case TextNode:
		w, h := measureText(n.Content, availW)
		return &Layout{Rect: Rect{X: x, Y: y, Width: w, Height: h}}

	case InputNode:
		content := n.Value
		if content == "" {
			content = n.Placeholder
		}
		w := VisibleWidth(content)
		if availW > 0 && w > availW {
			w = availW
		}
		return &Layout{Rect: Rect{X: x, Y: y, Width: w, Height: 1}}

	case SpinnerNode:
		w := 1
		if n.Label != "" {
			w += 1 + VisibleWidth(n.Label)
		}
		if availW > 0 && w > availW {
			w = availW
		}
		return &Layout{Rect: Rect{X: x, Y: y, Width: w, Height: 1}}

	case PopupNode:
		return &Layout{Rect: Rect{X: x, Y: y, Width: availW, Height: n.MaxVisible}}

	case FragmentNode:
		return layoutBox(BoxNode{Children: n.Children, Direction: Vertical}, x, y, availW, availH)

	case StaticNode:
		return layoutBox(BoxNode{Children: n.Children, Direction: Vertical}, x, y, availW, availH)

	case BoxNode:
		return layoutBox(n, x, y, availW, availH)

	case OverlayNode:
		// Overlays occupy no space in the flow; they are laid out
		// independently when composited.
		return &Layout{Rect: Rect{X: x, Y: y}}
	}
	return &Layout{Rect: Rect{X: x, Y: y}}
}

func layoutBox(b BoxNode, x, y, availW, availH int) *Layout {
	inset := b.Margin
	border := 0
	if b.Border.IsSet() {
		border = 1
	}

	innerX := x + inset.Left + border + b.Padding.Left
	innerY := y + inset.Top + border + b.Padding.Top
	innerW := availW - inset.Horizontal() - 2*border - b.Padding.Horizontal()
	innerH := availH - inset.Vertical() - 2*border - b.Padding.Vertical()
	if availW == 0 {
		innerW = 0 // no-wrap sentinel propagates
	}
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	children := make([]*Layout, 0, len(b.Children))

	if b.Direction == Vertical {
		heights := mainAxisSizes(b.Children, innerW, innerH, b.Gap, Vertical)
		cy := innerY
		total := 0
		for i, child := range b.Children {
			cl := layoutNode(child, innerX, cy, innerW, heights[i])
			cl.Rect.Height = heights[i]
			if isContainer(child) {
				cl.Rect.Width = innerW
			}
			children = append(children, cl)
			cy += heights[i]
			total += heights[i]
			if i < len(b.Children)-1 {
				cy += b.Gap
				total += b.Gap
			}
		}
		h := total + 2*border + b.Padding.Vertical() + inset.Vertical()
		return &Layout{
			Rect:     Rect{X: x, Y: y, Width: availW, Height: h},
			Children: children,
		}
	}

	widths := mainAxisSizes(b.Children, innerW, innerW, 0, Horizontal)
	cx := innerX
	maxH := 0
	for i, child := range b.Children {
		cl := layoutNode(child, cx, innerY, widths[i], innerH)
		cl.Rect.Width = widths[i]
		children = append(children, cl)
		cx += widths[i]
		if cl.Rect.Height > maxH {
			maxH = cl.Rect.Height
		}
	}
	h := maxH + 2*border + b.Padding.Vertical() + inset.Vertical()
	return &Layout{
		Rect:     Rect{X: x, Y: y, Width: availW, Height: h},
		Children: children,
	}
}

// mainAxisSizes partitions children along the main axis: Fixed children
// reserve their cells, Content children take their natural size, and Flex
// children share whatever remains in proportion to their weights. The first
// flex child absorbs the integer remainder, so when at least one flex child
// exists the sizes (plus gaps) sum exactly to the available space.
func mainAxisSizes(children []Node, innerW, avail, gap int, dir Direction) []int {
	sizes := make([]int, len(children))
	weights := make([]int, len(children))
	totalWeight := 0
	used := 0
	firstFlex := -1

	for i, child := range children {
		size := nodeSize(child)
		if w, ok := size.FixedSize(); ok {
			sizes[i] = w
			used += w
			continue
		}
		if w, ok := size.FlexWeight(); ok {
			weights[i] = w
			totalWeight += w
			if firstFlex < 0 {
				firstFlex = i
			}
			continue
		}
		sizes[i] = naturalMainSize(child, innerW, dir)
		used += sizes[i]
	}
	if len(children) > 1 && dir == Vertical {
		used += gap * (len(children) - 1)
	}

	if totalWeight == 0 {
		return sizes
	}

	remaining := avail - used
	if remaining < 0 {
		remaining = 0
	}
	distributed := 0
	for i := range children {
		if weights[i] == 0 {
			continue
		}
		sizes[i] = remaining * weights[i] / totalWeight
		distributed += sizes[i]
	}
	sizes[firstFlex] += remaining - distributed
	return sizes
}

// nodeSize returns the sizing mode of a child; only boxes carry one.
func nodeSize(node Node) Size {
	if b, ok := node.(BoxNode); ok {
		return b.Size
	}
	return Size{}
}

func isContainer(node Node) bool {
	switch node.(type) {
	case BoxNode, FragmentNode, StaticNode:
		return true
	}
	return false
}

// naturalMainSize measures a content-sized child along the main axis.
func naturalMainSize(node Node, innerW int, dir Direction) int {
	if dir == Vertical {
		return naturalHeight(node, innerW)
	}
	return naturalWidth(node, innerW)
}

func naturalHeight(node Node, width int) int {
	switch n := node.(type) {
	case EmptyNode, OverlayNode, nil:
		return 0
	case TextNode:
		_, h := measureText(n.Content, width)
		return h
	case InputNode, SpinnerNode:
		return 1
	case PopupNode:
		return n.MaxVisible
	case FragmentNode:
		return layoutNode(n, 0, 0, width, 0).Rect.Height
	case StaticNode:
		return layoutNode(n, 0, 0, width, 0).Rect.Height
	case BoxNode:
		return layoutNode(n, 0, 0, width, 0).Rect.Height
	}
	return 0
}

func naturalWidth(node Node, innerW int) int {
	switch n := node.(type) {
	case EmptyNode, OverlayNode, nil:
		return 0
	case TextNode:
		w, _ := measureText(n.Content, innerW)
		return w
	case FragmentNode:
		return maxChildWidth(n.Children, innerW)
	case StaticNode:
		return maxChildWidth(n.Children, innerW)
	case BoxNode:
		insets := n.Margin.Horizontal() + n.Padding.Horizontal()
		if n.Border.IsSet() {
			insets += 2
		}
		childW := innerW - insets
		if innerW == 0 {
			childW = 0
		} else if childW < 0 {
			childW = 0
		}
		w := 0
		if n.Direction == Vertical {
			w = maxChildWidth(n.Children, childW)
		} else {
			for _, child := range n.Children {
				w += naturalWidth(child, childW)
			}
		}
		w += insets
		if innerW > 0 && w > innerW {
			w = innerW
		}
		return w
	default:
		l := layoutNode(node, 0, 0, innerW, 0)
		return l.Rect.Width
	}
}

func maxChildWidth(children []Node, width int) int {
	max := 0
	for _, child := range children {
		if w := naturalWidth(child, width); w > max {
			max = w
		}
	}
	return max
}

// measureText returns the wrapped width and row count of content at the given
// width. Width 0 disables wrapping.
func measureText(content string, width int) (int, int) {
	maxW := 0
	rows := 0
	for _, line := range splitContentLines(content) {
		for _, wrapped := range wrapLine(line, width) {
			if w := VisibleWidth(wrapped); w > maxW {
				maxW = w
			}
			rows++
		}
	}
	if rows == 0 {
		rows = 1
	}
	return maxW, rows
}
