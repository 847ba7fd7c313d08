// Package desktop hosts a light cycle session in a GLFW window: it polls
// the keyboard into a game.Router, advances the game.Controller on the wall
// clock, draws the background and trail surfaces and plays sound cues.
package desktop

// DefaultTitle is the window title used when Options.Title is empty.
const DefaultTitle = "Light Cycle"

// Options tune the host. The zero value opens a window with sound.
type Options struct {
	Title  string
	Mute   bool
	Volume float64 // effect volume in (0,1]; zero keeps the default
}
