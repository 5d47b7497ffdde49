package engine

import (
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/renderer"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}

	// Set by the engine before FnInitialize is called.
	Events  *core.EventSystem
	Input   *core.Input
	Metrics *core.Metrics

	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnShutdown   Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *renderer.RenderPacket, deltaTime float64) error
type Shutdown func() error
