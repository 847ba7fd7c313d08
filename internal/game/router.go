package game

import (
	"strings"
	"time"
)

// Router turns key identifiers into cycle commands and the transport toggle.
// Identifiers are compared case-insensitively; unknown ones are dropped.
type Router struct {
	ctrl      *Controller
	toggleKey string
}

func NewRouter(ctrl *Controller, toggleKey string) *Router {
	if toggleKey == "" {
		toggleKey = DefaultToggleKey
	}
	return &Router{ctrl: ctrl, toggleKey: toggleKey}
}

func (r *Router) ToggleKey() string { return r.toggleKey }

// Press delivers one key press. A key may drive several cycles if they
// share it. It reports whether anything was bound to the key.
func (r *Router) Press(key string, now time.Time) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	handled := false
	for i, c := range r.ctrl.Cycles() {
		if d, ok := c.Binding(key); ok {
			r.ctrl.Command(i, d, now)
			handled = true
		}
	}
	if strings.EqualFold(key, r.toggleKey) {
		r.ctrl.Toggle()
		handled = true
	}
	return handled
}

// Keys lists every identifier the router reacts to, toggle key first.
func (r *Router) Keys() []string {
	keys := []string{r.toggleKey}
	seen := map[string]bool{strings.ToLower(r.toggleKey): true}
	for _, c := range r.ctrl.Cycles() {
		for _, k := range c.Keys {
			lk := strings.ToLower(k)
			if k == "" || seen[lk] {
				continue
			}
			seen[lk] = true
			keys = append(keys, k)
		}
	}
	return keys
}
