package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Direction is one of the four grid headings. The zero value is North.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every heading in key-table order.
var Directions = [4]Direction{North, East, South, West}

var directionVecs = [4]mgl64.Vec2{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

var directionNames = [4]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

func (d Direction) Valid() bool { return d >= North && d <= West }

// Vec returns the unit vector for d in screen space (y grows downwards).
func (d Direction) Vec() mgl64.Vec2 {
	if !d.Valid() {
		return mgl64.Vec2{}
	}
	return directionVecs[d]
}

// Opposite returns the antiparallel heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts full names or their first letter, in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}
