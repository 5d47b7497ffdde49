package renderer

import (
	"github.com/spaghettifunk/arpuzzle/engine/assets"
	"github.com/spaghettifunk/arpuzzle/engine/math"
)

type GeometryRenderData struct {
	Mesh  *assets.Mesh
	Model math.Mat4
}

// RenderPacket collects everything drawn during one frame.
type RenderPacket struct {
	DeltaTime float64
	// Geometries in draw order.
	Geometries []GeometryRenderData
	// HUD text, one entry per line, top to bottom.
	Text []string
}

func NewRenderPacket(deltaTime float64) *RenderPacket {
	return &RenderPacket{DeltaTime: deltaTime}
}

// DrawMesh queues a mesh with its world transform. Invalid meshes are skipped.
func (p *RenderPacket) DrawMesh(mesh *assets.Mesh, transform math.Mat4) {
	if !mesh.Valid() {
		return
	}
	p.Geometries = append(p.Geometries, GeometryRenderData{Mesh: mesh, Model: transform})
}

func (p *RenderPacket) AddText(line string) {
	p.Text = append(p.Text, line)
}
