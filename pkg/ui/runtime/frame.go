package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/shadotui/pkg/ui/backend"
)

// Alignment positions text within a region.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// BorderType selects the box-drawing set for a block.
type BorderType int

const (
	BorderPlain BorderType = iota
	BorderRounded
)

type borderSet struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var borders = map[BorderType]borderSet{
	BorderPlain:   {'┌', '┐', '└', '┘', '─', '│'},
	BorderRounded: {'╭', '╮', '╰', '╯', '─', '│'},
}

// Span is a run of text in a single style.
type Span struct {
	Text  string
	Style backend.Style
}

// Raw returns an unstyled span.
func Raw(text string) Span {
	return Span{Text: text, Style: backend.DefaultStyle()}
}

// Block is a bordered box with an optional title on the top edge. Title
// spans are patched over BorderStyle.
type Block struct {
	Title       []Span
	TitleAlign  Alignment
	Border      BorderType
	BorderStyle backend.Style
}

// Paragraph is multi-line text. Scroll skips that many columns from the
// start of each line.
type Paragraph struct {
	Text   string
	Style  backend.Style
	Align  Alignment
	Scroll int
}

// Frame is one draw pass over a render target. Drawing outside Area is
// clipped.
type Frame struct {
	target    backend.RenderTarget
	area      Rect
	cursorX   int
	cursorY   int
	cursorSet bool
}

// NewFrame sizes a frame to the target's current dimensions.
func NewFrame(target backend.RenderTarget) *Frame {
	w, h := target.Size()
	return &Frame{target: target, area: Rect{Width: w, Height: h}}
}

// Area returns the full drawable region.
func (f *Frame) Area() Rect {
	return f.area
}

// SetString writes s starting at (x, y), stopping after maxWidth columns or
// at the frame edge. A negative maxWidth only clips at the edge. It returns
// the columns written.
func (f *Frame) SetString(x, y int, s string, style backend.Style, maxWidth int) int {
	if y < f.area.Y || y >= f.area.Y+f.area.Height {
		return 0
	}
	limit := f.area.X + f.area.Width
	if maxWidth >= 0 && x+maxWidth < limit {
		limit = x + maxWidth
	}
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > limit {
			break
		}
		if col >= f.area.X {
			f.target.SetContent(col, y, r, nil, style)
		}
		col += w
	}
	return col - x
}

// Fill paints every cell of area with r.
func (f *Frame) Fill(area Rect, r rune, style backend.Style) {
	area = area.Intersect(f.area)
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			f.target.SetContent(x, y, r, nil, style)
		}
	}
}

// DrawBlock draws the border and title and returns the inner region.
func (f *Frame) DrawBlock(area Rect, b Block) Rect {
	area = area.Intersect(f.area)
	if area.Width < 2 || area.Height < 2 {
		return Rect{X: area.X, Y: area.Y}
	}
	set := borders[b.Border]
	right, bottom := area.X+area.Width-1, area.Y+area.Height-1

	for x := area.X + 1; x < right; x++ {
		f.target.SetContent(x, area.Y, set.horizontal, nil, b.BorderStyle)
		f.target.SetContent(x, bottom, set.horizontal, nil, b.BorderStyle)
	}
	for y := area.Y + 1; y < bottom; y++ {
		f.target.SetContent(area.X, y, set.vertical, nil, b.BorderStyle)
		f.target.SetContent(right, y, set.vertical, nil, b.BorderStyle)
	}
	f.target.SetContent(area.X, area.Y, set.topLeft, nil, b.BorderStyle)
	f.target.SetContent(right, area.Y, set.topRight, nil, b.BorderStyle)
	f.target.SetContent(area.X, bottom, set.bottomLeft, nil, b.BorderStyle)
	f.target.SetContent(right, bottom, set.bottomRight, nil, b.BorderStyle)

	if len(b.Title) > 0 {
		room := area.Width - 2
		x := area.X + 1 + alignOffset(spansWidth(b.Title), room, b.TitleAlign)
		for _, span := range b.Title {
			rem := area.X + 1 + room - x
			if rem <= 0 {
				break
			}
			x += f.SetString(x, area.Y, span.Text, b.BorderStyle.Patch(span.Style), rem)
		}
	}

	return area.Inset(1)
}

// DrawParagraph draws p inside area, one line per row.
func (f *Frame) DrawParagraph(area Rect, p Paragraph) {
	area = area.Intersect(f.area)
	if area.Empty() {
		return
	}
	for i, line := range strings.Split(p.Text, "\n") {
		if i >= area.Height {
			break
		}
		if p.Scroll > 0 {
			line = runewidth.TruncateLeft(line, p.Scroll, "")
		}
		x := area.X + alignOffset(runewidth.StringWidth(line), area.Width, p.Align)
		f.SetString(x, area.Y+i, line, p.Style, area.X+area.Width-x)
	}
}

// SetCursor asks the render driver to show the cursor at (x, y) after this
// frame.
func (f *Frame) SetCursor(x, y int) {
	f.cursorX, f.cursorY, f.cursorSet = x, y, true
}

// Cursor returns the requested cursor position, if any.
func (f *Frame) Cursor() (x, y int, ok bool) {
	return f.cursorX, f.cursorY, f.cursorSet
}

func spansWidth(spans []Span) int {
	w := 0
	for _, s := range spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

func alignOffset(width, room int, align Alignment) int {
	if width >= room {
		return 0
	}
	switch align {
	case AlignCenter:
		return (room - width) / 2
	case AlignRight:
		return room - width
	default:
		return 0
	}
}
