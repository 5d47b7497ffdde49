package assets

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/arpuzzle/engine/resources"
)

// Scene is a loaded scene description. The scene owns every mesh created
// from it; meshes become invalid once the scene is released.
type Scene struct {
	Name     string
	Path     string
	MeshData []resources.MeshConfig

	meshes   []*Mesh
	released bool
}

// Mesh is a handle to a mesh created from a scene's mesh data.
type Mesh struct {
	UniqueID uuid.UUID
	Name     string
	Data     resources.MeshConfig

	scene *Scene
}

// NewScene builds an in-memory scene, for scenes that do not come from disk.
func NewScene(name string, meshData ...resources.MeshConfig) *Scene {
	return newScene(name, "", meshData)
}

func newScene(name, path string, meshData []resources.MeshConfig) *Scene {
	return &Scene{
		Name:     name,
		Path:     path,
		MeshData: meshData,
	}
}

// CreateMesh creates a mesh handle owned by the scene.
func (s *Scene) CreateMesh(data resources.MeshConfig) (*Mesh, error) {
	if s.released {
		return nil, fmt.Errorf("scene %s: create mesh %s after release", s.Name, data.Name)
	}
	m := &Mesh{
		UniqueID: uuid.New(),
		Name:     data.Name,
		Data:     data,
		scene:    s,
	}
	s.meshes = append(s.meshes, m)
	return m, nil
}

// CreatePrimaryMesh creates a mesh from the first mesh data entry.
func (s *Scene) CreatePrimaryMesh() (*Mesh, error) {
	if len(s.MeshData) == 0 {
		return nil, fmt.Errorf("scene %s: no mesh data", s.Name)
	}
	return s.CreateMesh(s.MeshData[0])
}

func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

func (s *Scene) Released() bool {
	return s.released
}

// Release invalidates the scene and every mesh created from it. Scenes
// loaded through the AssetManager are released with ReleaseScene instead.
func (s *Scene) Release() {
	for _, m := range s.meshes {
		m.scene = nil
	}
	s.meshes = nil
	s.released = true
}

// Scene returns the owning scene, or nil once it has been released.
func (m *Mesh) Scene() *Scene {
	return m.scene
}

func (m *Mesh) Valid() bool {
	return m != nil && m.scene != nil
}

func (m *Mesh) String() string {
	return fmt.Sprintf("%s(%s)", m.Name, m.UniqueID.String()[:8])
}
