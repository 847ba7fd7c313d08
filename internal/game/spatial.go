package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RectF is an axis-aligned rectangle in surface-pixel space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

// RectXYWH builds a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float64) RectF {
	return RectF{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

func (r RectF) W() float64 { return r.X1 - r.X0 }
func (r RectF) H() float64 { return r.Y1 - r.Y0 }

// Empty reports whether r covers no area.
func (r RectF) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

func (r RectF) Contains(o RectF) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// Intersect returns the overlap of r and o; the result is Empty when they are disjoint.
func (r RectF) Intersect(o RectF) RectF {
	return RectF{
		X0: math.Max(r.X0, o.X0),
		Y0: math.Max(r.Y0, o.Y0),
		X1: math.Min(r.X1, o.X1),
		Y1: math.Min(r.Y1, o.Y1),
	}
}

// SweptRects returns the rectangles covered by a head of the given stroke
// width moving from `from` to `to`.
//
// probe is the strip the head entered this tick: as long as the move and
// offset by half a stroke in the direction of travel, so it never overlaps
// the square painted at `from` on the previous tick. stroke is the whole
// swept segment widened by the stroke on both axes; it is what gets painted.
func SweptRects(from, to mgl64.Vec2, width float64) (probe, stroke RectF) {
	half := width / 2
	x0, y0 := from.X(), from.Y()
	x1, y1 := to.X(), to.Y()

	switch {
	case x1 > x0:
		probe = RectXYWH(x0+half, y0-half, x1-x0, width)
	case x1 < x0:
		probe = RectXYWH(x1-half, y0-half, x0-x1, width)
	case y1 > y0:
		probe = RectXYWH(x0-half, y0+half, width, y1-y0)
	case y1 < y0:
		probe = RectXYWH(x0-half, y1-half, width, y0-y1)
	}

	stroke = RectXYWH(
		math.Min(x0, x1)-half,
		math.Min(y0, y1)-half,
		math.Abs(x1-x0)+width,
		math.Abs(y1-y0)+width,
	)
	return probe, stroke
}
