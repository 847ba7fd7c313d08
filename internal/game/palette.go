package game

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB accepts "#rrggbb", "#rgb" or "rgb(r, g, b)".
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		parts := strings.Split(lower[4:len(lower)-1], ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			ch[i] = uint8(v)
		}
		return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

var Palette = struct {
	Background RGB
	GridLine   RGB
	Orange     RGB
	Blue       RGB
	Green      RGB
	Magenta    RGB
}{
	Background: RGB{R: 20, G: 20, B: 20},
	GridLine:   RGB{R: 200, G: 200, B: 200},
	Orange:     RGB{R: 255, G: 128, B: 0},
	Blue:       RGB{R: 0, G: 170, B: 255},
	Green:      RGB{R: 60, G: 220, B: 60},
	Magenta:    RGB{R: 230, G: 60, B: 200},
}
