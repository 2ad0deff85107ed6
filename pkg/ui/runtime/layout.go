package runtime

// Rect is a screen region in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks r by n cells on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// SplitHorizontal divides r into columns sized by percentages of its width.
// The last column absorbs rounding so the columns always cover r.
func (r Rect) SplitHorizontal(percents ...int) []Rect {
	if len(percents) == 0 {
		return []Rect{r}
	}
	out := make([]Rect, len(percents))
	x := r.X
	for i, p := range percents {
		w := r.Width * p / 100
		if i == len(percents)-1 {
			w = r.X + r.Width - x
		}
		if w < 0 {
			w = 0
		}
		out[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += w
	}
	return out
}

// SplitBottom reserves h rows at the bottom of r. When r is shorter than h
// the bottom takes everything.
func (r Rect) SplitBottom(h int) (top, bottom Rect) {
	if h > r.Height {
		h = r.Height
	}
	if h < 0 {
		h = 0
	}
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - h}
	bottom = Rect{X: r.X, Y: r.Y + r.Height - h, Width: r.Width, Height: h}
	return top, bottom
}
