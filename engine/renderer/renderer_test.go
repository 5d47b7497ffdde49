package renderer

import (
	"testing"

	"github.com/spaghettifunk/arpuzzle/engine/assets"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"github.com/spaghettifunk/arpuzzle/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMesh(t *testing.T) *assets.Mesh {
	t.Helper()
	scene := assets.NewScene("pipe1", resources.MeshConfig{Name: "pipe"})
	mesh, err := scene.CreatePrimaryMesh()
	require.NoError(t, err)
	return mesh
}

func TestPacketSkipsInvalidMeshes(t *testing.T) {
	p := NewRenderPacket(0.016)
	p.DrawMesh(nil, math.NewMat4Identity())
	assert.Empty(t, p.Geometries)

	mesh := testMesh(t)
	model := math.NewMat4Translation(math.NewVec3(0, 0, -1))
	p.DrawMesh(mesh, model)
	require.Len(t, p.Geometries, 1)
	assert.Equal(t, model, p.Geometries[0].Model)
}

func TestDrawFrame(t *testing.T) {
	backend := NewHeadlessBackend()
	r := New(backend)
	require.NoError(t, r.Initialize("test"))

	p := NewRenderPacket(0.016)
	p.DrawMesh(testMesh(t), math.NewMat4Identity())
	p.DrawMesh(testMesh(t), math.NewMat4Identity())
	p.AddText("Level 1")
	p.AddText("Easy")
	require.NoError(t, r.DrawFrame(p))

	assert.Equal(t, uint64(1), backend.Frames())
	assert.Len(t, backend.LastFrame(), 2)
	assert.Equal(t, "Level 1 | Easy", backend.LastText())

	// empty frame replaces the previous one
	require.NoError(t, r.DrawFrame(NewRenderPacket(0.016)))
	assert.Equal(t, uint64(2), backend.Frames())
	assert.Empty(t, backend.LastFrame())
	assert.Equal(t, "Level 1 | Easy", backend.LastText())

	require.NoError(t, r.Shutdown())
}

func TestHeadlessFrameOrdering(t *testing.T) {
	b := NewHeadlessBackend()
	assert.Error(t, b.EndFrame(0))
	require.NoError(t, b.BeginFrame(0))
	assert.Error(t, b.BeginFrame(0))
	require.NoError(t, b.EndFrame(0))
}
