package vellum

import (
	"strings"
	"testing"
)

func popupItems(labels ...string) []PopupItem {
	items := make([]PopupItem, len(labels))
	for i, l := range labels {
		items[i] = PopupItem{Label: l}
	}
	return items
}

func TestPopupFixedHeight(t *testing.T) {
	p := Popup(popupItems("one", "two", "three", "four", "five", "six"), 0, 4)
	out := RenderString(p, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("popup rendered %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if w := VisibleWidth(line); w > 40 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestPopupPadsShortLists(t *testing.T) {
	p := Popup(popupItems("one", "two"), 0, 4)
	lines := strings.Split(RenderString(p, 40), "\n")
	if len(lines) != 4 {
		t.Fatalf("popup rendered %d lines, want 4", len(lines))
	}
	// Bottom-aligned: blank rows on top.
	if lines[0] != "" || lines[1] != "" {
		t.Errorf("top rows not blank: %q, %q", lines[0], lines[1])
	}
	if StripANSI(lines[2]) != "▸ one" {
		t.Errorf("line 2 = %q, want selected %q", StripANSI(lines[2]), "▸ one")
	}
	if StripANSI(lines[3]) != "  two" {
		t.Errorf("line 3 = %q", StripANSI(lines[3]))
	}
}

func TestPopupScrollsToSelection(t *testing.T) {
	p := Popup(popupItems("one", "two", "three", "four", "five", "six"), 5, 4)
	lines := strings.Split(RenderString(p, 40), "\n")
	if len(lines) != 4 {
		t.Fatalf("popup rendered %d lines, want 4", len(lines))
	}
	if StripANSI(lines[0]) != "  three" {
		t.Errorf("first visible = %q, want %q", StripANSI(lines[0]), "  three")
	}
	if StripANSI(lines[3]) != "▸ six" {
		t.Errorf("last visible = %q, want selected %q", StripANSI(lines[3]), "▸ six")
	}
}

func TestPopupSelectionBold(t *testing.T) {
	p := Popup(popupItems("pick me"), 0, 1)
	out := RenderString(p, 40)
	if !strings.Contains(out, "\x1b[1m") {
		t.Errorf("selected row not bold: %q", out)
	}
}

func TestPopupTruncatesLongLabels(t *testing.T) {
	p := Popup(popupItems("abcdefghijklmnop"), 0, 1)
	out := RenderString(p, 10)
	plain := StripANSI(out)
	if w := VisibleWidth(plain); w > 10 {
		t.Errorf("line is %d cells wide: %q", w, plain)
	}
	if !strings.HasSuffix(plain, "…") {
		t.Errorf("truncated label missing ellipsis: %q", plain)
	}
}

func TestPopupKindPrefix(t *testing.T) {
	p := Popup([]PopupItem{{Label: "read_file", Kind: "fn"}}, 0, 1)
	plain := StripANSI(RenderString(p, 40))
	if plain != "▸ fn read_file" {
		t.Errorf("kind row = %q, want %q", plain, "▸ fn read_file")
	}
}

func TestPopupDescriptionColumn(t *testing.T) {
	items := []PopupItem{
		{Label: "/help", Description: "show available commands"},
		{Label: "/quit", Description: "leave the chat"},
	}
	lines := strings.Split(RenderString(Popup(items, 0, 2), 40), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if got := StripANSI(lines[1]); got != "  /quit  leave the chat" {
		t.Errorf("description row = %q", got)
	}
	// Descriptions render dimmed.
	if !strings.Contains(lines[1], "\x1b[2m") {
		t.Errorf("description not dimmed: %q", lines[1])
	}
	for i, line := range lines {
		if w := VisibleWidth(line); w > 40 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestPopupDescriptionTruncated(t *testing.T) {
	p := Popup([]PopupItem{{Label: "/x", Description: strings.Repeat("d", 30)}}, 0, 1)
	plain := StripANSI(RenderString(p, 20))
	if w := VisibleWidth(plain); w > 20 {
		t.Errorf("row is %d cells wide: %q", w, plain)
	}
	if !strings.HasSuffix(plain, "…") {
		t.Errorf("truncated description missing ellipsis: %q", plain)
	}
}

func TestPopupDescriptionDroppedWhenCramped(t *testing.T) {
	p := Popup([]PopupItem{{Label: "name", Description: "never fits"}}, 0, 1)
	plain := StripANSI(RenderString(p, 8))
	if strings.Contains(plain, "never") {
		t.Errorf("description rendered in a cramped row: %q", plain)
	}
	if w := VisibleWidth(plain); w > 8 {
		t.Errorf("row is %d cells wide", w)
	}
}

func TestPopupViewportOffset(t *testing.T) {
	items := popupItems("one", "two", "three", "four", "five", "six")

	p := Popup(items, 3, 2).WithOffset(3)
	lines := strings.Split(RenderString(p, 40), "\n")
	if StripANSI(lines[0]) != "▸ four" || StripANSI(lines[1]) != "  five" {
		t.Errorf("offset window = %q", lines)
	}

	// The window slides back when the selection is above the offset.
	p = Popup(items, 0, 2).WithOffset(4)
	lines = strings.Split(RenderString(p, 40), "\n")
	if StripANSI(lines[0]) != "▸ one" {
		t.Errorf("window did not follow selection: %q", lines)
	}
}

func TestPopupCustomStyles(t *testing.T) {
	p := Popup(popupItems("a", "b"), 0, 2).
		WithStyles(Style{FG: White}, Style{FG: Cyan, Attr: AttrBold})
	lines := strings.Split(RenderString(p, 40), "\n")
	if !strings.Contains(lines[0], "\x1b[1;36m") {
		t.Errorf("selected row missing selected style: %q", lines[0])
	}
	if !strings.Contains(lines[1], "\x1b[37m") {
		t.Errorf("unselected row missing item style: %q", lines[1])
	}
}

func TestPopupLayoutHeight(t *testing.T) {
	p := Popup(popupItems("a", "b"), 0, 5)
	l := CalculateLayout(p, 40, 20)
	if l.Rect.Height != 5 {
		t.Errorf("layout height = %d, want 5", l.Rect.Height)
	}
}
