package renderer

import (
	"fmt"

	"github.com/spaghettifunk/arpuzzle/engine/core"
)

type Renderer struct {
	backend RendererBackend
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string) error {
	return r.backend.Initialize(appName)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	for _, g := range packet.Geometries {
		r.backend.DrawGeometry(g)
	}
	if len(packet.Text) > 0 {
		r.backend.DrawText(packet.Text)
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}
