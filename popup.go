package vellum

import "github.com/mattn/go-runewidth"

// PopupItem is a selectable row in a popup list: a label, an optional kind
// prefix shown before it, and an optional description rendered dimmed in a
// trailing column.
type PopupItem struct {
	Label       string
	Kind        string
	Description string
}

// PopupNode is a completion-style list that always renders exactly
// MaxVisible lines so an overlay anchored above an input never shifts as
// the item count changes. The window starts at ViewportOffset and slides
// just far enough to keep the selection visible; short lists are
// bottom-aligned with blank rows padding the top.
type PopupNode struct {
	Items          []PopupItem
	Selected       int
	MaxVisible     int
	ViewportOffset int

	// ItemStyle styles unselected rows; SelectedStyle the selected row.
	// A zero SelectedStyle falls back to the bold variant of ItemStyle.
	ItemStyle     Style
	SelectedStyle Style
}

func (PopupNode) isNode() {}

// Popup builds a popup showing at most maxVisible items at a time.
func Popup(items []PopupItem, selected, maxVisible int) PopupNode {
	return PopupNode{Items: items, Selected: selected, MaxVisible: maxVisible}
}

// WithOffset sets the first visible item index.
func (p PopupNode) WithOffset(offset int) PopupNode {
	p.ViewportOffset = offset
	return p
}

// WithStyles sets the unselected and selected row styles.
func (p PopupNode) WithStyles(item, selected Style) PopupNode {
	p.ItemStyle = item
	p.SelectedStyle = selected
	return p
}

// visibleRange returns the half-open item range shown. The window starts at
// ViewportOffset and is adjusted just enough to keep Selected in view and
// the range within bounds.
func (p PopupNode) visibleRange() (int, int) {
	if p.MaxVisible <= 0 || len(p.Items) == 0 {
		return 0, 0
	}
	start := p.ViewportOffset
	if start < 0 {
		start = 0
	}
	if p.Selected >= 0 {
		if p.Selected < start {
			start = p.Selected
		}
		if p.Selected >= start+p.MaxVisible {
			start = p.Selected - p.MaxVisible + 1
		}
	}
	end := start + p.MaxVisible
	if end > len(p.Items) {
		end = len(p.Items)
		start = end - p.MaxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func renderPopupLines(p PopupNode, width int) []string {
	if p.MaxVisible <= 0 {
		return nil
	}
	start, end := p.visibleRange()

	lines := make([]string, 0, p.MaxVisible)
	for i := p.MaxVisible - (end - start); i > 0; i-- {
		lines = append(lines, "")
	}
	for i := start; i < end; i++ {
		lines = append(lines, p.renderItem(i, width))
	}
	return lines
}

func (p PopupNode) renderItem(i, width int) string {
	item := p.Items[i]

	marker := "  "
	style := p.ItemStyle
	if i == p.Selected {
		marker = "▸ "
		style = p.SelectedStyle
		if style.IsZero() {
			style = p.ItemStyle.Bold()
		}
	}

	prefix := marker
	if item.Kind != "" {
		prefix += item.Kind + " "
	}
	label := item.Label
	if width > 0 {
		max := width - VisibleWidth(prefix)
		if max < 0 {
			max = 0
		}
		if runewidth.StringWidth(label) > max {
			label = runewidth.Truncate(label, max, "…")
		}
	}
	line := prefix + label

	if item.Description != "" {
		avail := width - VisibleWidth(line) - 2
		if width == 0 {
			return style.Apply(line) + "  " + style.Dim().Apply(item.Description)
		}
		if avail > 4 {
			desc := item.Description
			if runewidth.StringWidth(desc) > avail {
				desc = runewidth.Truncate(desc, avail, "…")
			}
			return style.Apply(line) + "  " + style.Dim().Apply(desc)
		}
	}
	return style.Apply(line)
}
