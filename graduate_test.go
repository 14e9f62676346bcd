package vellum

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGraduationPlanOrder(t *testing.T) {
	tree := Col(
		Scrollback("first", Text("line one")),
		Scrollback("second", Text("line two")),
		Text("live"),
	)
	g := NewGraduationState()
	staged := g.Plan(tree, Renderer{}, 80)

	want := []GraduatedContent{
		{Key: "first", Content: "line one", Newline: true},
		{Key: "second", Content: "line two", Newline: true},
	}
	if diff := cmp.Diff(want, staged); diff != "" {
		t.Errorf("staged mismatch (-want +got):\n%s", diff)
	}
}

func TestGraduationCommitIsIrreversible(t *testing.T) {
	tree := Col(Scrollback("k", Text("v")))
	g := NewGraduationState()
	staged := g.Plan(tree, Renderer{}, 80)
	delta, pending := g.FormatStdoutDelta(staged, "\n")
	g.Commit(staged, pending)

	if delta != "v" {
		t.Errorf("delta = %q, want %q", delta, "v")
	}
	if !g.Graduated("k") {
		t.Error("key not graduated after commit")
	}
	// Replanning the same tree stages nothing.
	if again := g.Plan(tree, Renderer{}, 80); len(again) != 0 {
		t.Errorf("replanned %d entries, want 0", len(again))
	}
}

func TestGraduationChangedContentNotReemitted(t *testing.T) {
	g := NewGraduationState()
	first := Col(Scrollback("k", Text("original")))
	staged := g.Plan(first, Renderer{}, 80)
	g.Commit(staged, true)

	changed := Col(Scrollback("k", Text("rewritten")))
	if again := g.Plan(changed, Renderer{}, 80); len(again) != 0 {
		t.Errorf("changed content under graduated key staged %d entries, want 0", len(again))
	}
}

func TestGraduationDuplicateKeysInOneTree(t *testing.T) {
	tree := Col(
		Scrollback("dup", Text("first occurrence")),
		Scrollback("dup", Text("second occurrence")),
	)
	g := NewGraduationState()
	staged := g.Plan(tree, Renderer{}, 80)
	if len(staged) != 1 {
		t.Fatalf("staged %d entries, want 1", len(staged))
	}
	if staged[0].Content != "first occurrence" {
		t.Errorf("staged content = %q, want first occurrence", staged[0].Content)
	}
}

func TestGraduationUnkeyedStaticsIgnored(t *testing.T) {
	tree := Col(StaticNode{Children: []Node{Text("no key")}})
	g := NewGraduationState()
	if staged := g.Plan(tree, Renderer{}, 80); len(staged) != 0 {
		t.Errorf("unkeyed static staged %d entries, want 0", len(staged))
	}
}

func TestGraduationSkipsOverlays(t *testing.T) {
	tree := Col(
		Overlay(Col(Scrollback("trapped", Text("popup content"))), FromBottom(0)),
		Scrollback("free", Text("history")),
	)
	g := NewGraduationState()
	staged := g.Plan(tree, Renderer{}, 80)
	if len(staged) != 1 || staged[0].Key != "free" {
		t.Errorf("staged = %v, want only %q", staged, "free")
	}
}

func TestGraduationPendingNewlineAcrossFrames(t *testing.T) {
	g := NewGraduationState()

	staged := g.Plan(Col(Scrollback("a", Text("first"))), Renderer{}, 80)
	delta, pending := g.FormatStdoutDelta(staged, "\n")
	g.Commit(staged, pending)
	if strings.HasSuffix(delta, "\n") {
		t.Errorf("delta ends with line break: %q", delta)
	}
	if !g.PendingNewline() {
		t.Error("pending newline not recorded")
	}

	staged = g.Plan(Col(Scrollback("a", Text("first")), Scrollback("b", Text("second"))), Renderer{}, 80)
	delta, pending = g.FormatStdoutDelta(staged, "\n")
	g.Commit(staged, pending)
	if delta != "\nsecond" {
		t.Errorf("second delta = %q, want %q", delta, "\nsecond")
	}
}

func TestGraduationContinuationAppendsInline(t *testing.T) {
	g := NewGraduationState()

	staged := g.Plan(Col(Scrollback("head", Text("building"))), Renderer{}, 80)
	_, pending := g.FormatStdoutDelta(staged, "\n")
	g.Commit(staged, pending)

	staged = g.Plan(Col(ScrollbackContinuation("tail", Text(" done"))), Renderer{}, 80)
	if len(staged) != 1 || staged[0].Newline {
		t.Fatalf("continuation staged = %v, want Newline=false", staged)
	}
	delta, _ := g.FormatStdoutDelta(staged, "\n")
	if delta != " done" {
		t.Errorf("continuation delta = %q, want %q (no leading break)", delta, " done")
	}
}

func TestGraduationEmptyDeltaKeepsPending(t *testing.T) {
	g := NewGraduationState()
	staged := g.Plan(Col(Scrollback("a", Text("x"))), Renderer{}, 80)
	_, pending := g.FormatStdoutDelta(staged, "\n")
	g.Commit(staged, pending)

	delta, pending := g.FormatStdoutDelta(nil, "\n")
	if delta != "" {
		t.Errorf("empty stage delta = %q, want empty", delta)
	}
	if !pending {
		t.Error("pending flag dropped by empty frame")
	}
}

func TestGraduationEmptyContentLeavesPendingUnset(t *testing.T) {
	g := NewGraduationState()

	staged := g.Plan(Col(Scrollback("blank")), Renderer{}, 80)
	if len(staged) != 1 {
		t.Fatalf("staged %d entries, want 1", len(staged))
	}
	delta, pending := g.FormatStdoutDelta(staged, "\n")
	if delta != "" {
		t.Errorf("empty entry delta = %q, want empty", delta)
	}
	if pending {
		t.Error("pending set although no bytes were written")
	}
	g.Commit(staged, pending)
	if !g.Graduated("blank") {
		t.Error("empty entry's key not graduated")
	}

	// The first real delta must not start with a spurious line break.
	staged = g.Plan(Col(Scrollback("blank"), Scrollback("real", Text("hello"))), Renderer{}, 80)
	delta, pending = g.FormatStdoutDelta(staged, "\n")
	if delta != "hello" {
		t.Errorf("first real delta = %q, want %q", delta, "hello")
	}
	if !pending {
		t.Error("pending not set after real content")
	}
}

func TestGraduationKeysInCommitOrder(t *testing.T) {
	g := NewGraduationState()
	staged := g.Plan(Col(
		Scrollback("one", Text("1")),
		Scrollback("two", Text("2")),
		Scrollback("three", Text("3")),
	), Renderer{}, 80)
	g.Commit(staged, true)

	want := []string{"one", "two", "three"}
	if diff := cmp.Diff(want, g.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
}
