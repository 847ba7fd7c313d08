// Command lightcycle runs a light cycle game in an OpenGL window.
//
// Usage
//
// The lightcycle command takes one optional argument:
//
//	lightcycle [config_file]
//
// It is the path to a TOML config file. Without it the path is taken from
// LIGHTCYCLE_CONFIG, and failing that a two player game with default keys
// is played. A .env file in the working directory is loaded first.
//
// Environment
//
//	LIGHTCYCLE_CONFIG  config file path when no argument is given
//	LIGHTCYCLE_MUTE    set to 1 to disable sound
//	LIGHTCYCLE_VOLUME  effect volume between 0 and 1
//
// Controls
//
// Each cycle turns with its own four keys; pressing the key for the
// direction a cycle already travels gives it a short boost. The toggle key
// (Space by default) starts, pauses and, after a crash, clears the arena.
// Escape or closing the window quits.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"lightcycle/internal/desktop"
	"lightcycle/internal/game"
)

const usage = `Usage: lightcycle [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, LIGHTCYCLE_CONFIG is used, and
failing that a two player game with default parameters is played.
`

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		Fatal(fmt.Errorf("load .env: %w", err))
	}

	path := os.Getenv("LIGHTCYCLE_CONFIG")
	switch len(os.Args) {
	case 1:
	case 2:
		path = os.Args[1]
	default:
		Fatal(fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage))
	}

	conf := game.DefaultConfig()
	if path != "" {
		var err error
		if conf, err = game.LoadConfig(path); err != nil {
			Fatal(err)
		}
	}

	opts, err := optionsFromEnv()
	if err != nil {
		Fatal(err)
	}
	if err := desktop.Run(conf, opts); err != nil {
		Fatal(err)
	}
}

func optionsFromEnv() (desktop.Options, error) {
	var opts desktop.Options
	if v := os.Getenv("LIGHTCYCLE_MUTE"); v != "" {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("LIGHTCYCLE_MUTE: %w", err)
		}
		opts.Mute = mute
	}
	if v := os.Getenv("LIGHTCYCLE_VOLUME"); v != "" {
		vol, err := strconv.ParseFloat(v, 64)
		if err != nil || vol < 0 || vol > 1 {
			return opts, fmt.Errorf("LIGHTCYCLE_VOLUME: want a number between 0 and 1, got %q", v)
		}
		opts.Volume = vol
		if vol == 0 {
			opts.Mute = true
		}
	}
	return opts, nil
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
