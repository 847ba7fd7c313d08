//go:build !nogl

package desktop

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"lightcycle/internal/game"
)

// Run opens a window sized to the arena and plays until it is closed or
// Escape is pressed. It must be called from the main goroutine.
func Run(conf game.Config, opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctrl, err := game.NewController(conf)
	if err != nil {
		return err
	}
	router := game.NewRouter(ctrl, conf.ToggleKey)

	bindings, unknown := bindKeys(router.Keys())
	for _, name := range unknown {
		fmt.Fprintf(os.Stderr, "no keyboard key for %q, ignoring it\n", name)
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	window, err := initWindow(conf.Width, conf.Height, title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	sound := false
	if !opts.Mute {
		if err := InitAudio(); err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		} else {
			sound = true
			if opts.Volume > 0 {
				SetSFXVolume(opts.Volume)
			}
		}
	}
	watchEvents(ctrl, sound)

	// GL state.
	bg := game.Palette.Background
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(float32(bg.R)/255.0, float32(bg.G)/255.0, float32(bg.B)/255.0, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	background := game.NewBackground(conf.Width, conf.Height)
	var bgLayer, trailLayer layer
	defer rend.deleteLayer(&bgLayer)
	defer rend.deleteLayer(&trailLayer)

	fmt.Fprintf(os.Stderr, "press %s to start, pause and reset; Escape quits\n", router.ToggleKey())

	input := NewInput()
	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		now := time.Now()
		input.Poll(window, bindings, func(name string) {
			router.Press(name, now)
		})
		ctrl.Advance(now)

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimized: keep ticking without drawing.
			glfw.WaitEventsTimeout(game.TickInterval.Seconds())
			continue
		}
		rend.BeginFrame(fbW, fbH)
		rend.DrawSurface(&bgLayer, background)
		rend.DrawSurface(&trailLayer, ctrl.Surface())
		rend.EndFrame()

		window.SwapBuffers()
	}
	return nil
}

// watchEvents logs session events to stderr and, when sound is on, plays
// the matching cue.
func watchEvents(ctrl *game.Controller, sound bool) {
	bus := ctrl.Events()
	play := func(kind SoundKind) {
		if sound {
			PlaySound(kind)
		}
	}
	bus.Subscribe(game.EventStateChanged, func(e game.Event) {
		fmt.Fprintf(os.Stderr, "state: %s\n", e.State)
		switch e.State {
		case game.StateRunning:
			play(SoundStart)
		case game.StateStopped:
			play(SoundPause)
		}
	})
	bus.Subscribe(game.EventCrash, func(e game.Event) {
		fmt.Fprintf(os.Stderr, "%s crashed at (%.1f, %.1f) after %d ticks\n",
			ctrl.Cycles()[e.Cycle].Name, e.X, e.Y, ctrl.Ticks())
		play(SoundCrash)
	})
	bus.Subscribe(game.EventBoost, func(game.Event) { play(SoundBoost) })
	bus.Subscribe(game.EventTurn, func(game.Event) { play(SoundTurn) })
}
