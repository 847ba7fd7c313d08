//go:build nogl

package desktop

import (
	"fmt"
	"os"

	"lightcycle/internal/game"
)

// Run returns an error explaining that OpenGL support is disabled.
func Run(conf game.Config, opts Options) error {
	return fmt.Errorf("%s was built without OpenGL support", os.Args[0])
}
