package backend

// Color is a terminal color: a palette index in 0-255, a 24-bit value
// tagged with rgbFlag, or ColorDefault.
type Color int32

// ColorDefault leaves the terminal's own color in place. In a Style it
// also means "unset", so patching with it keeps the underlying color.
const ColorDefault Color = -1

// The eight base colors plus the two bright greys widgets use for hints.
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorSilver Color = 15
)

const rgbFlag = 1 << 24

func ColorRGB(r, g, b uint8) Color {
	return Color(rgbFlag | int32(r)<<16 | int32(g)<<8 | int32(b))
}

func (c Color) IsRGB() bool {
	return c != ColorDefault && c&rgbFlag != 0
}

// RGB splits a true color; palette colors yield zeros.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// AttrMask is a set of text modifiers.
type AttrMask uint16

const (
	AttrBold AttrMask = 1 << iota
	AttrDim
	AttrReverse
	AttrUnderline
)

// Style is a set of changes to apply to a cell. Fields left unset fall
// through when one style is patched over another, the way a span inherits
// the block it is drawn on.
type Style struct {
	fg, bg Color
	add    AttrMask
	sub    AttrMask
}

// DefaultStyle sets nothing. Use it rather than the zero value, whose
// colors are black.
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

func (s Style) Foreground(c Color) Style { s.fg = c; return s }
func (s Style) Background(c Color) Style { s.bg = c; return s }

func (s Style) Bold(on bool) Style      { return s.modify(AttrBold, on) }
func (s Style) Dim(on bool) Style       { return s.modify(AttrDim, on) }
func (s Style) Reverse(on bool) Style   { return s.modify(AttrReverse, on) }
func (s Style) Underline(on bool) Style { return s.modify(AttrUnderline, on) }

// modify records an explicit on or off so a patch can also clear a
// modifier set underneath.
func (s Style) modify(attr AttrMask, on bool) Style {
	if on {
		s.add |= attr
		s.sub &^= attr
	} else {
		s.sub |= attr
		s.add &^= attr
	}
	return s
}

// Patch layers other on top of s: its set colors win and its modifier
// changes are applied after s's.
func (s Style) Patch(other Style) Style {
	if other.fg != ColorDefault {
		s.fg = other.fg
	}
	if other.bg != ColorDefault {
		s.bg = other.bg
	}
	s.add = s.add&^other.sub | other.add
	s.sub = s.sub&^other.add | other.sub
	return s
}

// Decompose returns the colors and the modifiers that end up enabled.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.add
}
