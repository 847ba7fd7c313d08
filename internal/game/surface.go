package game

import "math"

// OpaqueAlpha marks a pixel as occupied by a trail.
const OpaqueAlpha = 255

// Surface is the trail raster. It is painted by the controller and sampled
// back as the collision map: a pixel whose alpha reached OpaqueAlpha is a wall.
//
// Pix is RGBA8, row-major, Width*Height*4 bytes.
type Surface struct {
	Width, Height int

	Pix []uint8

	NeedsUpload bool
}

func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		Width:       width,
		Height:      height,
		Pix:         make([]uint8, width*height*4),
		NeedsUpload: true,
	}
}

func (s *Surface) Bounds() RectF {
	return RectF{X1: float64(s.Width), Y1: float64(s.Height)}
}

func (s *Surface) pixOff(x, y int) int {
	return (y*s.Width + x) * 4
}

// At returns the colour and alpha at (x, y). Out-of-range reads are transparent.
func (s *Surface) At(x, y int) (RGB, uint8) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return RGB{}, 0
	}
	o := s.pixOff(x, y)
	return RGB{R: s.Pix[o], G: s.Pix[o+1], B: s.Pix[o+2]}, s.Pix[o+3]
}

func (s *Surface) Opaque(x, y int) bool {
	_, a := s.At(x, y)
	return a == OpaqueAlpha
}

// InBounds reports whether r lies entirely within [0,Width)x[0,Height).
func (s *Surface) InBounds(r RectF) bool {
	return s.Bounds().Contains(r)
}

// pixelSpan returns the half-open pixel range touched by [lo, hi) on an axis of size n.
func pixelSpan(lo, hi float64, n int) (int, int) {
	return clamp(int(math.Floor(lo)), 0, n), clamp(int(math.Ceil(hi)), 0, n)
}

// coverage is the length of [lo, hi) inside pixel [p, p+1).
func coverage(lo, hi float64, p int) float64 {
	fp := float64(p)
	return clampF(math.Min(hi, fp+1)-math.Max(lo, fp), 0, 1)
}

// Collides samples every pixel r touches and reports whether any is opaque.
// It only reads pixels; boundary handling is the caller's job.
func (s *Surface) Collides(r RectF) bool {
	if r.Empty() {
		return false
	}
	x0, x1 := pixelSpan(r.X0, r.X1, s.Width)
	y0, y1 := pixelSpan(r.Y0, r.Y1, s.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if s.Pix[s.pixOff(x, y)+3] == OpaqueAlpha {
				return true
			}
		}
	}
	return false
}

// Paint fills r with col, clipped to the surface. Edge pixels receive alpha
// in proportion to their coverage, composited over what is already there, so
// only a pixel fully inside some painted rectangle ever becomes opaque.
func (s *Surface) Paint(r RectF, col RGB) {
	clip := r.Intersect(s.Bounds())
	if clip.Empty() {
		return
	}
	x0, x1 := pixelSpan(clip.X0, clip.X1, s.Width)
	y0, y1 := pixelSpan(clip.Y0, clip.Y1, s.Height)
	for y := y0; y < y1; y++ {
		cy := coverage(clip.Y0, clip.Y1, y)
		for x := x0; x < x1; x++ {
			cov := cy * coverage(clip.X0, clip.X1, x)
			if cov <= 0 {
				continue
			}
			s.blend(s.pixOff(x, y), col, cov)
		}
	}
	s.NeedsUpload = true
}

func (s *Surface) blend(o int, col RGB, cov float64) {
	if cov >= 1 {
		s.Pix[o+0] = col.R
		s.Pix[o+1] = col.G
		s.Pix[o+2] = col.B
		s.Pix[o+3] = OpaqueAlpha
		return
	}
	a := s.Pix[o+3]
	if a == 0 {
		s.Pix[o+0] = col.R
		s.Pix[o+1] = col.G
		s.Pix[o+2] = col.B
	} else {
		s.Pix[o+0] = lerpU8(s.Pix[o+0], col.R, cov)
		s.Pix[o+1] = lerpU8(s.Pix[o+1], col.G, cov)
		s.Pix[o+2] = lerpU8(s.Pix[o+2], col.B, cov)
	}
	// Floor keeps partial paints strictly below opaque.
	s.Pix[o+3] = a + uint8(math.Floor(float64(OpaqueAlpha-a)*cov))
}

// Clear wipes every pixel back to transparent.
func (s *Surface) Clear() {
	clear(s.Pix)
	s.NeedsUpload = true
}
