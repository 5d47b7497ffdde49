package puzzle

import (
	"fmt"
	"testing"

	"github.com/spaghettifunk/arpuzzle/engine/assets"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"github.com/spaghettifunk/arpuzzle/engine/resources"
	"github.com/spaghettifunk/arpuzzle/engine/tracking"
)

const testTolerance float32 = 0.05

type fakeLoader struct {
	loaded   []*assets.Scene
	released []*assets.Scene
	failOn   string
	empty    map[string]bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{empty: map[string]bool{}}
}

func (f *fakeLoader) LoadScene(name string) (*assets.Scene, error) {
	if name == f.failOn {
		return nil, fmt.Errorf("%w: %s", core.ErrSceneNotFound, name)
	}
	var meshes []resources.MeshConfig
	if !f.empty[name] {
		meshes = append(meshes, resources.MeshConfig{Name: name + "_mesh"})
	}
	s := assets.NewScene(name, meshes...)
	f.loaded = append(f.loaded, s)
	return s, nil
}

func (f *fakeLoader) ReleaseScene(scene *assets.Scene) error {
	scene.Release()
	f.released = append(f.released, scene)
	return nil
}

// live returns the number of scenes loaded and not released.
func (f *fakeLoader) live() int {
	return len(f.loaded) - len(f.released)
}

func (f *fakeLoader) loadedNames() []string {
	names := make([]string, 0, len(f.loaded))
	for _, s := range f.loaded {
		names = append(names, s.Name)
	}
	return names
}

type drawCall struct {
	mesh      *assets.Mesh
	transform math.Mat4
}

type fakeDrawer struct {
	calls []drawCall
}

func (d *fakeDrawer) DrawMesh(mesh *assets.Mesh, transform math.Mat4) {
	d.calls = append(d.calls, drawCall{mesh: mesh, transform: transform})
}

type failingTracker struct {
	*tracking.Static
	err error
}

func (f *failingTracker) Update() error {
	return f.err
}

func composeDefinition(od objectDefinition) math.Mat4 {
	return Compose(od.scale, od.rotation.X, od.rotation.Y, od.rotation.Z, od.position, nil, nil)
}

// solvingPoses returns marker poses that put both objects of the level
// exactly on their reference transforms.
func solvingPoses(id int) (origin, secondary math.Mat4) {
	def := levelDefinitions[id]
	origin = composeDefinition(def.objects[0]).Inverse().Mul(def.references[0])
	secondary = composeDefinition(def.objects[1]).Inverse().Mul(def.references[1])
	return origin, secondary
}

// showSolution makes both markers of the level visible in solving poses.
func showSolution(tracker *tracking.Static, id int) {
	origin, secondary := solvingPoses(id)
	def := levelDefinitions[id]
	tracker.Show(def.objects[0].marker, origin)
	tracker.Show(def.objects[1].marker, secondary)
}

func newTestLevel(t *testing.T, id int) (*Level, *fakeLoader, *tracking.Static) {
	t.Helper()
	loader := newFakeLoader()
	tracker := tracking.NewStatic()
	level := NewLevel(loader, tracker)
	if err := level.InitLevel(id, testTolerance); err != nil {
		t.Fatalf("init level %d: %s", id, err)
	}
	return level, loader, tracker
}

// frame runs one sampling and update pass the way the session does.
func frame(level *Level) (found0, found1, matched bool) {
	level.ReadyForUpdate()
	found0, found1 = level.SampleMarkers()
	matched = level.GetUpdate()
	return found0, found1, matched
}
