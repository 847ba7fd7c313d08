//go:build !nogl

package desktop

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var namedKeys = map[string]glfw.Key{
	"space":      glfw.KeySpace,
	"enter":      glfw.KeyEnter,
	"return":     glfw.KeyEnter,
	"tab":        glfw.KeyTab,
	"backspace":  glfw.KeyBackspace,
	"up":         glfw.KeyUp,
	"down":       glfw.KeyDown,
	"left":       glfw.KeyLeft,
	"right":      glfw.KeyRight,
	"arrowup":    glfw.KeyUp,
	"arrowdown":  glfw.KeyDown,
	"arrowleft":  glfw.KeyLeft,
	"arrowright": glfw.KeyRight,
	"comma":      glfw.KeyComma,
	"period":     glfw.KeyPeriod,
	"slash":      glfw.KeySlash,
	"semicolon":  glfw.KeySemicolon,
}

// lookupKey maps a key identifier (a letter, a digit or one of namedKeys)
// to a GLFW key code.
func lookupKey(name string) (glfw.Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return glfw.KeyA + glfw.Key(c-'a'), true
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), true
		}
	}
	if k, ok := namedKeys[name]; ok {
		return k, true
	}
	if n, ok := strings.CutPrefix(name, "f"); ok && len(n) > 0 && len(n) <= 2 {
		num := 0
		for _, c := range n {
			if c < '0' || c > '9' {
				return 0, false
			}
			num = num*10 + int(c-'0')
		}
		if num >= 1 && num <= 25 {
			return glfw.KeyF1 + glfw.Key(num-1), true
		}
	}
	return 0, false
}

type keyBinding struct {
	name string
	key  glfw.Key
}

// bindKeys resolves identifiers to key codes. Identifiers with no keyboard
// mapping are returned separately; a key code is bound only once.
func bindKeys(names []string) (bound []keyBinding, unknown []string) {
	seen := make(map[glfw.Key]bool)
	for _, name := range names {
		k, ok := lookupKey(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		bound = append(bound, keyBinding{name: name, key: k})
	}
	return bound, unknown
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Poll calls press with the identifier of every bound key that went down
// since the previous poll.
func (in *Input) Poll(window *glfw.Window, bindings []keyBinding, press func(name string)) {
	for _, b := range bindings {
		if in.JustPressed(window, b.key) {
			press(b.name)
		}
	}
}
