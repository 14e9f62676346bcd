package vellum

import (
	"strings"
	"testing"
)

func TestExtractOverlays(t *testing.T) {
	tree := Col(
		Text("a"),
		Overlay(Text("floating"), FromBottom(1)),
		Col(Overlay(Text("nested"), FromTop(0))),
		Text("b"),
	)
	overlays, pruned := ExtractOverlays(tree)
	if len(overlays) != 2 {
		t.Fatalf("extracted %d overlays, want 2", len(overlays))
	}
	out := RenderString(pruned, 80)
	if strings.Contains(out, "floating") || strings.Contains(out, "nested") {
		t.Errorf("pruned tree still renders overlay content: %q", out)
	}
	if out != "a\nb" {
		t.Errorf("pruned = %q, want %q", out, "a\nb")
	}
	// The input tree is untouched.
	if !strings.Contains(RenderString(tree, 80), "floating") {
		t.Error("original tree was modified by extraction")
	}
}

func TestCompositeFromBottom(t *testing.T) {
	base := []string{"r0", "r1", "r2", "r3", "r4", "r5"}
	overlays := []OverlayNode{Overlay(Col(Text("p0"), Text("p1")), FromBottom(1))}
	out := CompositeOverlays(base, overlays, Renderer{}, 80)

	want := []string{"r0", "r1", "r2", "p0", "p1", "r5"}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, out[i], want[i])
		}
	}
}

func TestCompositeFromTop(t *testing.T) {
	base := []string{"r0", "r1", "r2"}
	overlays := []OverlayNode{Overlay(Text("top"), FromTop(1))}
	out := CompositeOverlays(base, overlays, Renderer{}, 80)
	if out[0] != "r0" || out[1] != "top" || out[2] != "r2" {
		t.Errorf("composited = %q", out)
	}
}

func TestCompositeAt(t *testing.T) {
	base := []string{"aaaaaaaa"}
	overlays := []OverlayNode{Overlay(Text("XX"), At(0, 3))}
	out := CompositeOverlays(base, overlays, Renderer{}, 8)
	if out[0] != "aaaXXaaa" {
		t.Errorf("spliced = %q, want %q", out[0], "aaaXXaaa")
	}
}

func TestCompositePreservesLineCount(t *testing.T) {
	base := []string{"r0", "r1"}
	overlays := []OverlayNode{
		Overlay(Col(Text("a"), Text("b"), Text("c"), Text("d")), FromBottom(0)),
	}
	out := CompositeOverlays(base, overlays, Renderer{}, 80)
	if len(out) != len(base) {
		t.Fatalf("composite changed line count: %d -> %d", len(base), len(out))
	}
	// Overflowing rows clip from the top of the overlay.
	if out[0] != "c" || out[1] != "d" {
		t.Errorf("clipped overlay = %q", out)
	}
}

func TestCompositeDoesNotMutateBase(t *testing.T) {
	base := []string{"r0", "r1"}
	CompositeOverlays(base, []OverlayNode{Overlay(Text("x"), FromTop(0))}, Renderer{}, 80)
	if base[0] != "r0" {
		t.Errorf("base mutated: %q", base[0])
	}
}

func TestPadLinesTo(t *testing.T) {
	cases := []struct {
		in   []string
		n    int
		want []string
	}{
		{[]string{"a", "b"}, 4, []string{"a", "b", "", ""}},
		{[]string{"a", "b", "c", "d"}, 2, []string{"c", "d"}},
		{nil, 2, []string{"", ""}},
		{[]string{"a"}, 0, []string{}},
	}
	for _, c := range cases {
		got := PadLinesTo(c.in, c.n)
		if len(got) != len(c.want) {
			t.Errorf("PadLinesTo(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("PadLinesTo(%q, %d)[%d] = %q, want %q", c.in, c.n, i, got[i], c.want[i])
			}
		}
	}
}
