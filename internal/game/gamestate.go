package game

import (
	"fmt"
	"time"
)

type State int

const (
	StateStopped State = iota // initial, or paused by the player
	StateRunning              // ticks are being scheduled
	StateCrashed              // at least one cycle hit a wall or trail
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateCrashed:
		return "crashed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Controller owns one game session: the cycles, the trail surface and the
// fixed-step schedule. It is not safe for concurrent use; hosts call it from
// a single goroutine, interleaving input with Advance.
type Controller struct {
	cycles   []*Cycle
	surface  *Surface
	state    State
	interval time.Duration
	nextTick time.Time // zero until the first Advance after Start
	ticks    int
	bus      *EventBus
}

func NewController(conf Config) (*Controller, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cycles := make([]*Cycle, 0, len(conf.Cycles))
	for _, cc := range conf.Cycles {
		cycles = append(cycles, NewCycle(cc))
	}
	return &Controller{
		cycles:   cycles,
		surface:  NewSurface(conf.Width, conf.Height),
		state:    StateStopped,
		interval: TickInterval,
		bus:      NewEventBus(),
	}, nil
}

func (g *Controller) State() State { return g.state }
func (g *Controller) Cycles() []*Cycle { return g.cycles }
func (g *Controller) Surface() *Surface { return g.surface }
func (g *Controller) Ticks() int { return g.ticks }
func (g *Controller) Interval() time.Duration { return g.interval }
func (g *Controller) Events() *EventBus { return g.bus }

func (g *Controller) setState(s State) {
	if g.state == s {
		return
	}
	g.state = s
	g.bus.Emit(Event{Type: EventStateChanged, Cycle: -1, State: s})
}

// Start begins (or restarts) the tick schedule. Starting after a crash
// keeps the trails on the surface.
func (g *Controller) Start() {
	if g.state == StateRunning {
		g.Stop()
	}
	g.nextTick = time.Time{}
	g.setState(StateRunning)
}

// Stop halts the schedule. The surface is left as is.
func (g *Controller) Stop() {
	if g.state != StateRunning {
		return
	}
	g.nextTick = time.Time{}
	g.setState(StateStopped)
}

// Reset returns every cycle to its start and wipes the surface.
func (g *Controller) Reset() {
	g.nextTick = time.Time{}
	for _, c := range g.cycles {
		c.Reset()
	}
	g.surface.Clear()
	g.ticks = 0
	g.setState(StateStopped)
}

// Toggle is the single transport key: pause while running, clear after a
// crash, start otherwise.
func (g *Controller) Toggle() {
	switch g.state {
	case StateRunning:
		g.Stop()
	case StateCrashed:
		g.Reset()
	default:
		g.Start()
	}
}

// Command forwards a direction press to cycle i.
func (g *Controller) Command(i int, d Direction, now time.Time) CommandResult {
	if i < 0 || i >= len(g.cycles) {
		return CommandIgnored
	}
	c := g.cycles[i]
	res := c.Command(d, now)
	switch res {
	case CommandBoost:
		g.bus.Emit(Event{Type: EventBoost, Cycle: i, X: c.Position.X(), Y: c.Position.Y()})
	case CommandTurn:
		g.bus.Emit(Event{Type: EventTurn, Cycle: i, X: c.Position.X(), Y: c.Position.Y()})
	}
	return res
}

// Step runs one tick: every cycle moves, is tested against the boundary and
// the surface, and then paints its stroke whether or not it crashed. Cycles
// are processed in order, so an earlier cycle's stroke is already on the
// surface when a later one is tested. Step does nothing unless running and
// returns the indices of the cycles that crashed.
func (g *Controller) Step() []int {
	if g.state != StateRunning {
		return nil
	}
	var crashed []int
	for i, c := range g.cycles {
		prev := c.Position
		c.UpdatePosition(g.interval)
		probe, stroke := SweptRects(prev, c.Position, StrokeWidth)
		if !probe.Empty() && (!g.surface.InBounds(probe) || g.surface.Collides(probe)) {
			crashed = append(crashed, i)
		}
		g.surface.Paint(stroke, c.Color)
	}
	g.ticks++

	if len(crashed) > 0 {
		g.nextTick = time.Time{}
		for _, i := range crashed {
			c := g.cycles[i]
			g.bus.Emit(Event{Type: EventCrash, Cycle: i, X: c.Position.X(), Y: c.Position.Y()})
		}
		g.setState(StateCrashed)
	}
	return crashed
}

// Advance runs every tick that has come due by now, one per interval, and
// expires boosts in time order between them. The first tick after Start
// fires one interval after the first Advance. A backlog longer than
// MaxCatchUpTicks is dropped. It returns the number of ticks run.
func (g *Controller) Advance(now time.Time) int {
	if g.state != StateRunning {
		g.expireBoosts(now)
		return 0
	}
	if g.nextTick.IsZero() {
		g.nextTick = now.Add(g.interval)
	}
	n := 0
	for g.state == StateRunning && !g.nextTick.After(now) {
		if n == MaxCatchUpTicks {
			g.nextTick = now.Add(g.interval)
			break
		}
		g.expireBoosts(g.nextTick)
		g.Step()
		n++
		if g.state == StateRunning {
			g.nextTick = g.nextTick.Add(g.interval)
		}
	}
	g.expireBoosts(now)
	return n
}

func (g *Controller) expireBoosts(now time.Time) {
	for i, c := range g.cycles {
		if c.ExpireBoost(now) {
			g.bus.Emit(Event{Type: EventBoostEnded, Cycle: i, X: c.Position.X(), Y: c.Position.Y()})
		}
	}
}
