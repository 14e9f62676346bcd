// Package vellum is a terminal UI rendering engine: a declarative node tree,
// a box-model layout algorithm, an ANSI/Unicode-aware string renderer with
// cursor tracking, an overlay compositor, and a scrollback-graduation frame
// planner that lets an application mix permanently-committed history with a
// redrawn live viewport.
//
// The engine is pure and synchronous. An external runner builds a Node tree
// each frame, calls FramePlanner.Plan, and writes the returned bytes to the
// terminal. Nothing here touches a file descriptor.
package vellum

// Node is the declarative UI tree. It is a closed set of variants matched
// exhaustively by the layout engine and renderer; a Node value is immutable
// once built and never contains a cycle.
type Node interface {
	isNode()
}

// Direction controls how a Box positions its children.
type Direction uint8

const (
	Vertical   Direction = iota // children stacked top to bottom
	Horizontal                  // children placed left to right
)

// sizeMode discriminates Size variants. The zero value is content-sized.
type sizeMode uint8

const (
	sizeContent sizeMode = iota
	sizeFixed
	sizeFlex
)

// Size is a child's sizing mode along its parent's main axis. The zero value
// sizes to content.
type Size struct {
	mode sizeMode
	n    int
}

// Fixed reserves exactly n cells along the main axis.
func Fixed(n int) Size {
	if n < 0 {
		n = 0
	}
	return Size{mode: sizeFixed, n: n}
}

// Flex takes a weighted share of the space remaining after fixed and
// content-sized siblings.
func Flex(weight int) Size {
	if weight < 1 {
		weight = 1
	}
	return Size{mode: sizeFlex, n: weight}
}

// FixedSize returns the reserved cell count and whether the size is fixed.
func (s Size) FixedSize() (int, bool) {
	return s.n, s.mode == sizeFixed
}

// FlexWeight returns the flex weight and whether the size is flexible.
func (s Size) FlexWeight() (int, bool) {
	return s.n, s.mode == sizeFlex
}

// IsContent returns true for the default content-sized mode.
func (s Size) IsContent() bool {
	return s.mode == sizeContent
}

// EmptyNode renders nothing and occupies no space.
type EmptyNode struct{}

func (EmptyNode) isNode() {}

// Empty is the canonical empty node.
var Empty = EmptyNode{}

// TextNode is a styled run of text. Content may span multiple lines and may
// already contain ANSI sequences; the renderer wraps it to the available
// width without miscounting those sequences.
type TextNode struct {
	Content string
	Style   Style
}

func (TextNode) isNode() {}

// Text returns an unstyled text node.
func Text(content string) TextNode {
	return TextNode{Content: content}
}

// Styled returns a text node with the given style.
func Styled(content string, style Style) TextNode {
	return TextNode{Content: content, Style: style}
}

// BoxNode is a container with direction, sizing, padding, margin and an
// optional border. The border contributes exactly one cell on each side.
type BoxNode struct {
	Children  []Node
	Direction Direction
	Size      Size
	Padding   Edges
	Margin    Edges
	Border    Border
	Gap       int // extra blank lines between column children
	Style     Style
}

func (BoxNode) isNode() {}

// Col returns a vertical box of the given children.
func Col(children ...Node) BoxNode {
	return BoxNode{Children: children, Direction: Vertical}
}

// Row returns a horizontal box of the given children.
func Row(children ...Node) BoxNode {
	return BoxNode{Children: children, Direction: Horizontal}
}

// WithSize returns a copy of the box with the given main-axis size.
func (b BoxNode) WithSize(s Size) BoxNode {
	b.Size = s
	return b
}

// WithBorder returns a copy of the box with the given border glyph set.
func (b BoxNode) WithBorder(border Border) BoxNode {
	b.Border = border
	return b
}

// WithPadding returns a copy of the box with the given padding.
func (b BoxNode) WithPadding(p Edges) BoxNode {
	b.Padding = p
	return b
}

// WithMargin returns a copy of the box with the given margin.
func (b BoxNode) WithMargin(m Edges) BoxNode {
	b.Margin = m
	return b
}

// WithGap returns a copy of the box with the given gap between children.
func (b BoxNode) WithGap(gap int) BoxNode {
	b.Gap = gap
	return b
}

// WithStyle returns a copy of the box with the given style. The style is
// applied to the border glyphs.
func (b BoxNode) WithStyle(s Style) BoxNode {
	b.Style = s
	return b
}

// Spacer returns an empty flexible box, used in rows to push siblings apart.
func Spacer() BoxNode {
	return BoxNode{Direction: Horizontal, Size: Flex(1)}
}

// InputNode is a single-line text input. Focused inputs report a cursor
// position from RenderWithCursor; unfocused inputs never do. CursorIndex is
// a codepoint index into Value and is clamped to [0, len in runes] when
// rendering, so out-of-range values are never an error.
type InputNode struct {
	Value       string
	CursorIndex int
	Placeholder string
	Style       Style
	Focused     bool
}

func (InputNode) isNode() {}

// Input returns a focused input with the cursor at the given codepoint index.
func Input(value string, cursorIndex int) InputNode {
	return InputNode{Value: value, CursorIndex: cursorIndex, Focused: true}
}

// WithPlaceholder sets the dimmed hint shown while the value is empty.
func (n InputNode) WithPlaceholder(p string) InputNode {
	n.Placeholder = p
	return n
}

// WithStyle sets the style applied to the input's value.
func (n InputNode) WithStyle(s Style) InputNode {
	n.Style = s
	return n
}

// spinnerFrames is the braille spinner glyph cycle.
var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// SpinnerNode is an animated activity indicator. The caller advances
// FrameIndex each tick; any non-negative value is valid.
type SpinnerNode struct {
	FrameIndex int
	Label      string
	Style      Style
}

func (SpinnerNode) isNode() {}

// Spinner returns a spinner with the given frame index and label.
func Spinner(frameIndex int, label string) SpinnerNode {
	return SpinnerNode{FrameIndex: frameIndex, Label: label}
}

// WithStyle sets the style applied to the spinner glyph and label.
func (s SpinnerNode) WithStyle(st Style) SpinnerNode {
	s.Style = st
	return s
}

// Frame returns the glyph for the spinner's current frame.
func (s SpinnerNode) Frame() rune {
	i := s.FrameIndex % len(spinnerFrames)
	if i < 0 {
		i += len(spinnerFrames)
	}
	return spinnerFrames[i]
}

// FragmentNode groups children without introducing a container. For layout
// and rendering it behaves exactly like an unstyled column.
type FragmentNode struct {
	Children []Node
}

func (FragmentNode) isNode() {}

// Fragment returns a fragment of the given children.
func Fragment(children ...Node) FragmentNode {
	return FragmentNode{Children: children}
}

// StaticNode is a keyed subtree whose rendered form becomes eligible for
// graduation into the terminal's native scrollback. Once a key graduates its
// emitted content is never re-rendered or altered, even if a later frame
// presents the same key with different children. Key equality identifies a
// logical history entry across frames.
//
// A continuation entry graduates without a preceding line break, appending to
// the previously graduated content mid-line. Streaming producers use this to
// graduate a long entry in chunks.
type StaticNode struct {
	Key          string
	Children     []Node
	Continuation bool
}

func (StaticNode) isNode() {}

// Scrollback returns a keyed static subtree.
func Scrollback(key string, children ...Node) StaticNode {
	return StaticNode{Key: key, Children: children}
}

// ScrollbackContinuation returns a static subtree that continues the
// previously graduated line instead of starting a new one.
func ScrollbackContinuation(key string, children ...Node) StaticNode {
	return StaticNode{Key: key, Children: children, Continuation: true}
}

// OverlayNode renders its child independently of the surrounding flow and
// composites it onto the live viewport at an anchored offset. Overlays are
// always part of the live viewport and never graduate.
type OverlayNode struct {
	Child  Node
	Anchor Anchor
}

func (OverlayNode) isNode() {}

// Overlay returns an overlay of child at the given anchor.
func Overlay(child Node, anchor Anchor) OverlayNode {
	return OverlayNode{Child: child, Anchor: anchor}
}
