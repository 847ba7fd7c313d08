package game

import "math"

// NewBackground renders the static arena grid: a dark fill crossed by 1px
// lines roughly every GridCell pixels, stretched so the outermost lines sit
// on the arena edges.
func NewBackground(width, height int) *Surface {
	s := NewSurface(width, height)
	full := s.Bounds()
	s.Paint(full, Palette.Background)
	if width < 2 || height < 2 {
		return s
	}

	rows := max(int(math.Round(float64(height-1)/GridCell)), 1)
	cols := max(int(math.Round(float64(width-1)/GridCell)), 1)
	rowHeight := float64(height-1) / float64(rows)
	colWidth := float64(width-1) / float64(cols)
	for r := 0; r <= rows; r++ {
		s.Paint(RectXYWH(0, float64(r)*rowHeight, float64(width), 1), Palette.GridLine)
	}
	for c := 0; c <= cols; c++ {
		s.Paint(RectXYWH(float64(c)*colWidth, 0, 1, float64(height)), Palette.GridLine)
	}
	return s
}
