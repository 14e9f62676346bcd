package vellum

import "strings"

// FrameTrace summarizes what a frame did, for debugging and assertions.
type FrameTrace struct {
	Frame         int
	GraduatedKeys []string
	VisualRows    int
}

// FrameSnapshot is everything a terminal driver needs to draw one frame:
// bytes to append to scrollback, the live viewport to redraw, and the
// cursor position within it.
type FrameSnapshot struct {
	// StdoutDelta is appended verbatim to stdout before the viewport is
	// redrawn. Empty when nothing graduated this frame.
	StdoutDelta string

	// Graduated lists the Static subtrees committed this frame.
	Graduated []GraduatedContent

	// BoundaryLines is how many blank rows separate scrollback history
	// from the top of the live viewport.
	BoundaryLines int

	// Viewport is the rendered live tree with overlays composited in.
	Viewport RenderResult

	// Lines is the viewport split into rows, convenient for drivers that
	// repaint row by row.
	Lines []string

	Trace FrameTrace
}

// FramePlanner turns successive Node trees into frame snapshots. It owns a
// GraduationState, so keyed history flows to scrollback exactly once across
// the planner's lifetime while the live viewport is re-rendered each frame.
type FramePlanner struct {
	renderer Renderer
	state    *GraduationState
	width    int
	height   int
	frame    int

	// BoundaryLines is the number of blank rows kept between graduated
	// history and the viewport once anything has graduated.
	BoundaryLines int
}

// NewFramePlanner creates a planner for a viewport of the given size.
func NewFramePlanner(width, height int) *FramePlanner {
	return &FramePlanner{
		renderer:      Renderer{},
		state:         NewGraduationState(),
		width:         width,
		height:        height,
		BoundaryLines: 1,
	}
}

// SetRenderer replaces the renderer, e.g. to switch on CRLF line breaks for
// a raw-mode terminal.
func (p *FramePlanner) SetRenderer(r Renderer) {
	p.renderer = r
}

// SetSize updates the viewport dimensions, typically on SIGWINCH.
func (p *FramePlanner) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// State exposes the planner's graduation state for inspection.
func (p *FramePlanner) State() *GraduationState {
	return p.state
}

// Plan produces the next frame from tree. Overlays are extracted before
// graduation is planned, so overlay content can never reach scrollback;
// graduated keys are filtered out of the live viewport; overlays are
// composited back over the finished viewport rows.
func (p *FramePlanner) Plan(tree Node) FrameSnapshot {
	p.frame++
	lb := p.renderer.lineBreak()

	overlays, pruned := ExtractOverlays(tree)

	staged := p.state.Plan(pruned, p.renderer, p.width)
	delta, pending := p.state.FormatStdoutDelta(staged, lb)
	p.state.Commit(staged, pending)

	viewport := p.renderer.RenderFiltered(pruned, p.width, p.state.Graduated)

	lines := splitLines(viewport.Content, lb)
	boundary := 0
	if p.state.Len() > 0 {
		boundary = p.BoundaryLines
		// Blank rows prepend at the top, so a cursor's RowFromEnd is
		// unaffected.
		for i := 0; i < boundary; i++ {
			lines = append([]string{""}, lines...)
		}
	}
	if len(overlays) > 0 {
		lines = CompositeOverlays(lines, overlays, p.renderer, p.width)
	}
	viewport.Content = strings.Join(lines, lb)

	keys := make([]string, len(staged))
	for i, item := range staged {
		keys[i] = item.Key
	}
	rows := 0
	for _, line := range lines {
		rows += VisualRows(line, p.width)
	}
	snap := FrameSnapshot{
		StdoutDelta:   delta,
		Graduated:     staged,
		BoundaryLines: boundary,
		Viewport:      viewport,
		Lines:         lines,
		Trace: FrameTrace{
			Frame:         p.frame,
			GraduatedKeys: keys,
			VisualRows:    rows,
		},
	}
	debugf("frame %d: graduated=%v rows=%d delta=%dB", p.frame, keys, rows, len(delta))
	return snap
}
