package widgets

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

// Input is a single-line text buffer with a cursor. The cursor is a rune
// index in [0, len(value)].
type Input struct {
	value  []rune
	cursor int
}

// NewInput creates an input holding text with the cursor at the end.
func NewInput(text string) *Input {
	i := &Input{}
	i.SetValue(text)
	return i
}

// Value returns the current text.
func (i *Input) Value() string {
	return string(i.value)
}

// SetValue replaces the text and moves the cursor to the end.
func (i *Input) SetValue(text string) {
	i.value = []rune(text)
	i.cursor = len(i.value)
}

// Reset clears the text.
func (i *Input) Reset() {
	i.value = i.value[:0]
	i.cursor = 0
}

// Cursor returns the cursor position in runes.
func (i *Input) Cursor() int {
	return i.cursor
}

// VisualCursor returns the display width of the text before the cursor.
func (i *Input) VisualCursor() int {
	return runewidth.StringWidth(string(i.value[:i.cursor]))
}

// VisualScroll returns how many columns to skip so the cursor stays
// visible in a field width columns wide. The result always lands on a
// rune boundary.
func (i *Input) VisualScroll(width int) int {
	scroll := max(i.VisualCursor(), width) - width
	skipped := 0
	for _, r := range i.value {
		if skipped >= scroll {
			break
		}
		skipped += runewidth.RuneWidth(r)
	}
	return skipped
}

// HandleKey applies one key press and reports whether the text or cursor
// changed. Keys the input does not edit with are ignored.
func (i *Input) HandleKey(key terminal.KeyEvent) bool {
	before := i.cursor
	switch key.Key {
	case terminal.KeyRune:
		i.insert(key.Rune)
		return true
	case terminal.KeyBackspace:
		if i.cursor == 0 {
			return false
		}
		if key.Alt || key.Ctrl {
			start := i.wordLeft()
			i.value = append(i.value[:start], i.value[i.cursor:]...)
			i.cursor = start
			return true
		}
		i.value = append(i.value[:i.cursor-1], i.value[i.cursor:]...)
		i.cursor--
		return true
	case terminal.KeyDelete:
		if i.cursor >= len(i.value) {
			return false
		}
		i.value = append(i.value[:i.cursor], i.value[i.cursor+1:]...)
		return true
	case terminal.KeyLeft:
		if key.Ctrl || key.Alt {
			i.cursor = i.wordLeft()
		} else if i.cursor > 0 {
			i.cursor--
		}
	case terminal.KeyRight:
		if key.Ctrl || key.Alt {
			i.cursor = i.wordRight()
		} else if i.cursor < len(i.value) {
			i.cursor++
		}
	case terminal.KeyHome:
		i.cursor = 0
	case terminal.KeyEnd:
		i.cursor = len(i.value)
	default:
		return false
	}
	return i.cursor != before
}

func (i *Input) insert(r rune) {
	i.value = append(i.value, 0)
	copy(i.value[i.cursor+1:], i.value[i.cursor:])
	i.value[i.cursor] = r
	i.cursor++
}

func (i *Input) wordLeft() int {
	pos := i.cursor
	for pos > 0 && unicode.IsSpace(i.value[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(i.value[pos-1]) {
		pos--
	}
	return pos
}

func (i *Input) wordRight() int {
	pos := i.cursor
	for pos < len(i.value) && !unicode.IsSpace(i.value[pos]) {
		pos++
	}
	for pos < len(i.value) && unicode.IsSpace(i.value[pos]) {
		pos++
	}
	return pos
}
