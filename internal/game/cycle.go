package game

import (
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// CommandResult reports how a cycle reacted to a direction command.
type CommandResult int

const (
	CommandIgnored CommandResult = iota // reversal onto its own trail
	CommandTurn
	CommandBoost
)

// Cycle is a player-controlled light cycle.
type Cycle struct {
	Name  string
	Color RGB

	Position  mgl64.Vec2
	Direction Direction
	Speed     float64 // units per second

	Boosted    bool
	BoostUntil time.Time // speed reverts once the clock reaches this

	Keys [4]string // indexed by Direction

	initialPosition  mgl64.Vec2
	initialDirection Direction
	initialSpeed     float64
}

func NewCycle(cc CycleConfig) *Cycle {
	pos := mgl64.Vec2{cc.Position[0], cc.Position[1]}
	return &Cycle{
		Name:             cc.Name,
		Color:            cc.Color,
		Position:         pos,
		Direction:        cc.Direction,
		Speed:            cc.Speed,
		Keys:             cc.Keys,
		initialPosition:  pos,
		initialDirection: cc.Direction,
		initialSpeed:     cc.Speed,
	}
}

func (c *Cycle) InitialSpeed() float64 { return c.initialSpeed }

// UpdatePosition advances the cycle along its heading for one interval.
func (c *Cycle) UpdatePosition(interval time.Duration) mgl64.Vec2 {
	dist := c.Speed * interval.Seconds()
	c.Position = c.Position.Add(c.Direction.Vec().Mul(dist))
	return c.Position
}

// Command applies a direction key press. Pressing the current heading
// boosts, pressing the opposite heading is ignored, anything else turns.
func (c *Cycle) Command(d Direction, now time.Time) CommandResult {
	switch {
	case !d.Valid():
		return CommandIgnored
	case d == c.Direction:
		c.Boost(now)
		return CommandBoost
	case d == c.Direction.Opposite():
		return CommandIgnored
	}
	c.Direction = d
	return CommandTurn
}

// Boost multiplies the speed once and (re)arms the reversion deadline.
// Pressing again while boosted only pushes the deadline out.
func (c *Cycle) Boost(now time.Time) {
	if !c.Boosted {
		c.Speed *= BoostFactor
		c.Boosted = true
	}
	c.BoostUntil = now.Add(BoostDuration)
}

// ExpireBoost reverts the speed when the boost deadline has passed.
// It reports whether a boost ended.
func (c *Cycle) ExpireBoost(now time.Time) bool {
	if !c.Boosted || now.Before(c.BoostUntil) {
		return false
	}
	c.Speed = c.initialSpeed
	c.Boosted = false
	return true
}

// Reset puts the cycle back at its starting position, heading and speed.
// A pending boost keeps its deadline and expires as usual.
func (c *Cycle) Reset() {
	c.Position = c.initialPosition
	c.Direction = c.initialDirection
	c.Speed = c.initialSpeed
}

// Binding returns the direction bound to key, matching case-insensitively.
func (c *Cycle) Binding(key string) (Direction, bool) {
	for _, d := range Directions {
		if strings.EqualFold(c.Keys[d], key) {
			return d, true
		}
	}
	return 0, false
}
