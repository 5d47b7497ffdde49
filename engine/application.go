package engine

import (
	"github.com/spaghettifunk/arpuzzle/engine/core"
)

type ApplicationConfig struct {
	// The application name used in logs and by the renderer.
	Name     string
	LogLevel core.LogLevel
	// Frames per second the loop aims for.
	TargetFPS int
	// Sleep away the remainder of a frame that finished early.
	LimitFrames bool
}
