package game

import (
	"math"
	"testing"
	"time"
)

func newTestController(t *testing.T, width, height int, cycles ...CycleConfig) *Controller {
	t.Helper()
	for i := range cycles {
		if cycles[i].Speed == 0 {
			cycles[i].Speed = 60
		}
		if cycles[i].Keys == ([4]string{}) {
			base := byte('A' + 4*i)
			for j := range cycles[i].Keys {
				cycles[i].Keys[j] = string(rune(base + byte(j)))
			}
		}
	}
	g, err := NewController(Config{Width: width, Height: height, ToggleKey: "Space", Cycles: cycles})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return g
}

func TestStraightRunAdvancesThirtyUnits(t *testing.T) {
	g := newTestController(t, 400, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	g.Start()
	for i := 0; i < 10; i++ {
		if crashed := g.Step(); len(crashed) != 0 {
			t.Fatalf("tick %d: unexpected crash %v", i, crashed)
		}
	}
	c := g.Cycles()[0]
	if math.Abs(c.Position.X()-130) > 1e-9 || c.Position.Y() != 100 {
		t.Fatalf("position after 10 ticks = %v, want (130, 100)", c.Position)
	}
	if g.State() != StateRunning {
		t.Fatalf("state = %s, want running", g.State())
	}
	if g.Ticks() != 10 {
		t.Fatalf("ticks = %d, want 10", g.Ticks())
	}
}

func TestAdvanceRunsOneTickPerInterval(t *testing.T) {
	g := newTestController(t, 400, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	t0 := time.Unix(1000, 0)
	g.Start()
	if n := g.Advance(t0); n != 0 {
		t.Fatalf("first Advance ran %d ticks, want 0", n)
	}
	if n := g.Advance(t0.Add(TickInterval - time.Millisecond)); n != 0 {
		t.Fatalf("Advance before the interval ran %d ticks", n)
	}
	total := 0
	for i := 1; i <= 10; i++ {
		total += g.Advance(t0.Add(time.Duration(i) * TickInterval))
	}
	if total != 10 {
		t.Fatalf("ticks over 500ms = %d, want 10", total)
	}
	if x := g.Cycles()[0].Position.X(); math.Abs(x-130) > 1e-9 {
		t.Fatalf("x = %f, want 130", x)
	}
}

func TestAdvanceDropsLongBacklog(t *testing.T) {
	g := newTestController(t, 800, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	t0 := time.Unix(1000, 0)
	g.Start()
	g.Advance(t0)
	late := t0.Add(time.Second)
	if n := g.Advance(late); n != MaxCatchUpTicks {
		t.Fatalf("catch-up ran %d ticks, want %d", n, MaxCatchUpTicks)
	}
	if n := g.Advance(late); n != 0 {
		t.Fatalf("backlog not dropped: %d more ticks", n)
	}
	if n := g.Advance(late.Add(TickInterval)); n != 1 {
		t.Fatalf("cadence after catch-up ran %d ticks, want 1", n)
	}
}

func TestAdvanceIdleWhenNotRunning(t *testing.T) {
	g := newTestController(t, 400, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	t0 := time.Unix(1000, 0)
	if n := g.Advance(t0.Add(time.Second)); n != 0 {
		t.Fatalf("stopped controller ran %d ticks", n)
	}
	if g.Step() != nil || g.Ticks() != 0 {
		t.Fatalf("Step ran while stopped")
	}
}

func TestTopBoundaryCrash(t *testing.T) {
	g := newTestController(t, 200, 200, CycleConfig{Position: [2]float64{100, 3}, Direction: North})
	var crashes []Event
	g.Events().Subscribe(EventCrash, func(e Event) { crashes = append(crashes, e) })

	g.Start()
	crashed := g.Step()
	if len(crashed) != 1 || crashed[0] != 0 {
		t.Fatalf("crashed = %v, want [0]", crashed)
	}
	if g.State() != StateCrashed {
		t.Fatalf("state = %s, want crashed", g.State())
	}
	if len(crashes) != 1 || crashes[0].Cycle != 0 {
		t.Fatalf("crash events = %+v", crashes)
	}
	if !g.Surface().Opaque(100, 2) {
		t.Fatalf("crash frame was not painted")
	}
	if g.Step() != nil {
		t.Fatalf("Step ran after crash")
	}
	if n := g.Advance(time.Unix(5000, 0)); n != 0 {
		t.Fatalf("Advance ran %d ticks after crash", n)
	}
}

func TestLaterCycleHitsEarlierStrokeSameTick(t *testing.T) {
	g := newTestController(t, 300, 200,
		CycleConfig{Position: [2]float64{100, 100}, Direction: East},
		CycleConfig{Position: [2]float64{110, 100}, Direction: West},
	)
	g.Start()
	crashed := g.Step()
	if len(crashed) != 1 || crashed[0] != 1 {
		t.Fatalf("crashed = %v, want [1]", crashed)
	}
	if g.State() != StateCrashed {
		t.Fatalf("state = %s, want crashed", g.State())
	}
	// Both strokes are drawn even though the second cycle crashed.
	if !g.Surface().Opaque(100, 100) || !g.Surface().Opaque(108, 100) {
		t.Fatalf("strokes missing from crash frame")
	}
}

func TestResetAfterCrashClearsTrails(t *testing.T) {
	g := newTestController(t, 300, 200,
		CycleConfig{Position: [2]float64{100, 100}, Direction: East},
		CycleConfig{Position: [2]float64{110, 100}, Direction: West},
	)
	g.Start()
	g.Step()
	_, stroke := SweptRects(g.Cycles()[0].initialPosition, g.Cycles()[0].Position, StrokeWidth)
	if !g.Surface().Collides(stroke) {
		t.Fatalf("trail missing before reset")
	}

	g.Reset()
	if g.State() != StateStopped {
		t.Fatalf("state after reset = %s, want stopped", g.State())
	}
	if g.Surface().Collides(stroke) || g.Surface().Collides(g.Surface().Bounds()) {
		t.Fatalf("trail still collides after reset")
	}
	for i, c := range g.Cycles() {
		if c.Position != c.initialPosition || c.Direction != c.initialDirection {
			t.Fatalf("cycle %d not reset: %v %s", i, c.Position, c.Direction)
		}
	}
	if g.Ticks() != 0 {
		t.Fatalf("ticks after reset = %d", g.Ticks())
	}
}

func TestStopKeepsSurface(t *testing.T) {
	g := newTestController(t, 400, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	g.Start()
	g.Step()
	g.Stop()
	if g.State() != StateStopped {
		t.Fatalf("state = %s, want stopped", g.State())
	}
	if !g.Surface().Opaque(100, 100) {
		t.Fatalf("stop cleared the surface")
	}
	g.Start()
	g.Step()
	if x := g.Cycles()[0].Position.X(); math.Abs(x-106) > 1e-9 {
		t.Fatalf("x after resume = %f, want 106", x)
	}
}

func TestStartWhileRunningRearmsSchedule(t *testing.T) {
	g := newTestController(t, 400, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	t0 := time.Unix(1000, 0)
	g.Start()
	g.Advance(t0)
	g.Start()
	if g.State() != StateRunning {
		t.Fatalf("state = %s, want running", g.State())
	}
	if n := g.Advance(t0.Add(TickInterval)); n != 0 {
		t.Fatalf("restart kept old schedule: %d ticks", n)
	}
	if n := g.Advance(t0.Add(2 * TickInterval)); n != 1 {
		t.Fatalf("restarted schedule ran %d ticks, want 1", n)
	}
}

func TestToggleCyclesThroughStates(t *testing.T) {
	g := newTestController(t, 200, 200, CycleConfig{Position: [2]float64{100, 3}, Direction: North})
	var states []State
	g.Events().Subscribe(EventStateChanged, func(e Event) { states = append(states, e.State) })

	g.Toggle()
	if g.State() != StateRunning {
		t.Fatalf("toggle from stopped -> %s", g.State())
	}
	g.Toggle()
	if g.State() != StateStopped {
		t.Fatalf("toggle from running -> %s", g.State())
	}
	g.Toggle()
	g.Step()
	if g.State() != StateCrashed {
		t.Fatalf("expected crash, got %s", g.State())
	}
	g.Toggle()
	if g.State() != StateStopped {
		t.Fatalf("toggle from crashed -> %s", g.State())
	}
	if g.Surface().Opaque(100, 2) {
		t.Fatalf("toggle from crashed did not reset the surface")
	}
	want := []State{StateRunning, StateStopped, StateRunning, StateCrashed, StateStopped}
	if len(states) != len(want) {
		t.Fatalf("state events = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("state events = %v, want %v", states, want)
		}
	}
}

func TestAdvanceExpiresBoostOnWallClock(t *testing.T) {
	g := newTestController(t, 800, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	t0 := time.Unix(1000, 0)
	ended := 0
	g.Events().Subscribe(EventBoostEnded, func(Event) { ended++ })

	g.Command(0, East, t0)
	if g.Cycles()[0].Speed != 90 {
		t.Fatalf("speed after boost = %f", g.Cycles()[0].Speed)
	}
	// Boosts expire while stopped too.
	g.Advance(t0.Add(BoostDuration - time.Millisecond))
	if g.Cycles()[0].Speed != 90 {
		t.Fatalf("boost expired early")
	}
	g.Advance(t0.Add(BoostDuration))
	if g.Cycles()[0].Speed != 60 || ended != 1 {
		t.Fatalf("speed = %f ended = %d after boost duration", g.Cycles()[0].Speed, ended)
	}
}

func TestBoostedTicksCoverMoreGround(t *testing.T) {
	g := newTestController(t, 800, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	t0 := time.Unix(1000, 0)
	g.Start()
	g.Advance(t0)
	g.Command(0, East, t0)
	for i := 1; i <= 4; i++ {
		g.Advance(t0.Add(time.Duration(i) * TickInterval))
	}
	if x := g.Cycles()[0].Position.X(); math.Abs(x-118) > 1e-9 {
		t.Fatalf("x after 4 boosted ticks = %f, want 118", x)
	}
	for i := 5; i <= 14; i++ {
		g.Advance(t0.Add(time.Duration(i) * TickInterval))
	}
	// Ticks 1-9 boosted (4.5 each), boost ends at 500ms before tick 10.
	if x := g.Cycles()[0].Position.X(); math.Abs(x-(100+9*4.5+5*3)) > 1e-9 {
		t.Fatalf("x after boost window = %f, want %f", x, 100+9*4.5+5*3)
	}
}

func TestCommandOutOfRangeIgnored(t *testing.T) {
	g := newTestController(t, 200, 200, CycleConfig{Position: [2]float64{100, 100}, Direction: East})
	if res := g.Command(3, North, time.Unix(0, 0)); res != CommandIgnored {
		t.Fatalf("out of range command = %v", res)
	}
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewController(Config{Width: 100, Height: 100}); err == nil {
		t.Fatalf("expected error for config without cycles")
	}
}
