package vellum

import "strconv"

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode represents the color mode for a color value.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // Terminal default
	Color16                       // Basic 16 colors (0-15)
	Color256                      // 256 color palette (0-255)
	ColorRGB                      // 24-bit true color
)

// Color represents a terminal color.
type Color struct {
	Mode    ColorMode
	R, G, B uint8 // For RGB mode
	Index   uint8 // For 16/256 mode
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// BasicColor returns one of the 16 basic terminal colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit true color from a hex value (e.g., 0xFF5500).
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8((hex >> 16) & 0xFF),
		G:    uint8((hex >> 8) & 0xFF),
		B:    uint8(hex & 0xFF),
	}
}

// Standard basic colors for convenience.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	// Bright variants
	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

// Style combines foreground, background colors and attributes.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with default colors and no attributes.
func DefaultStyle() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// IsZero returns true if the style would render content unchanged.
func (s Style) IsZero() bool {
	return s.FG.Mode == ColorDefault && s.BG.Mode == ColorDefault && s.Attr == AttrNone
}

// Fg returns a copy of the style with the given foreground color.
func (s Style) Fg(c Color) Style {
	s.FG = c
	return s
}

// Bg returns a copy of the style with the given background color.
func (s Style) Bg(c Color) Style {
	s.BG = c
	return s
}

// Bold returns a copy of the style with the bold attribute set.
func (s Style) Bold() Style {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Dim returns a copy of the style with the dim attribute set.
func (s Style) Dim() Style {
	s.Attr = s.Attr.With(AttrDim)
	return s
}

// Italic returns a copy of the style with the italic attribute set.
func (s Style) Italic() Style {
	s.Attr = s.Attr.With(AttrItalic)
	return s
}

// Underline returns a copy of the style with the underline attribute set.
func (s Style) Underline() Style {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// Apply wraps content in the SGR sequence for the style, followed by a reset.
// A zero style returns content unchanged, so unstyled text stays byte-identical
// to its input.
func (s Style) Apply(content string) string {
	if s.IsZero() {
		return content
	}
	buf := make([]byte, 0, len(content)+24)
	buf = append(buf, "\x1b["...)
	n := 0
	sep := func() {
		if n > 0 {
			buf = append(buf, ';')
		}
		n++
	}
	if s.Attr.Has(AttrBold) {
		sep()
		buf = append(buf, '1')
	}
	if s.Attr.Has(AttrDim) {
		sep()
		buf = append(buf, '2')
	}
	if s.Attr.Has(AttrItalic) {
		sep()
		buf = append(buf, '3')
	}
	if s.Attr.Has(AttrUnderline) {
		sep()
		buf = append(buf, '4')
	}
	if s.FG.Mode != ColorDefault {
		sep()
		buf = appendColor(buf, s.FG, false)
	}
	if s.BG.Mode != ColorDefault {
		sep()
		buf = appendColor(buf, s.BG, true)
	}
	buf = append(buf, 'm')
	buf = append(buf, content...)
	buf = append(buf, "\x1b[0m"...)
	return string(buf)
}

// appendColor appends the SGR parameters for a color.
func appendColor(buf []byte, c Color, bg bool) []byte {
	switch c.Mode {
	case Color16:
		// 30-37 / 90-97 for foreground, 40-47 / 100-107 for background
		base := 30
		if bg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		return strconv.AppendInt(buf, int64(base+idx), 10)
	case Color256:
		if bg {
			buf = append(buf, "48;5;"...)
		} else {
			buf = append(buf, "38;5;"...)
		}
		return strconv.AppendInt(buf, int64(c.Index), 10)
	case ColorRGB:
		if bg {
			buf = append(buf, "48;2;"...)
		} else {
			buf = append(buf, "38;2;"...)
		}
		buf = strconv.AppendInt(buf, int64(c.R), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(c.G), 10)
		buf = append(buf, ';')
		return strconv.AppendInt(buf, int64(c.B), 10)
	}
	return buf
}

// Edges holds per-side cell counts for padding and margin.
type Edges struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// EdgesAll returns equal edges on all sides.
func EdgesAll(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// EdgesVH returns vertical and horizontal edges.
func EdgesVH(v, h int) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal returns the total left+right size.
func (e Edges) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns the total top+bottom size.
func (e Edges) Vertical() int {
	return e.Top + e.Bottom
}

// Border defines the characters used for drawing box borders.
// The zero value means no border.
type Border struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// IsSet returns true if the border has glyphs to draw.
func (b Border) IsSet() bool {
	return b.TopLeft != 0
}

// Standard border glyph sets. Each contributes exactly one cell per side.
var (
	BorderSingle = Border{
		Horizontal:  '─',
		Vertical:    '│',
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
	}
	BorderRounded = Border{
		Horizontal:  '─',
		Vertical:    '│',
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
	}
	BorderDouble = Border{
		Horizontal:  '═',
		Vertical:    '║',
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
	}
	BorderHeavy = Border{
		Horizontal:  '━',
		Vertical:    '┃',
		TopLeft:     '┏',
		TopRight:    '┓',
		BottomLeft:  '┗',
		BottomRight: '┛',
	}
)
