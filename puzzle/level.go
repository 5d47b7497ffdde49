package puzzle

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/arpuzzle/engine/assets"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"github.com/spaghettifunk/arpuzzle/engine/tracking"
)

const (
	// Number of objects, and reference transforms, in every level.
	ObjectCount = 2

	// Translation row tolerance multipliers. The secondary object is already
	// expressed relative to the origin, so its translation is held tighter.
	originTranslationFactor    float32 = 4
	secondaryTranslationFactor float32 = 1.0 / 4
)

type SceneLoader interface {
	LoadScene(name string) (*assets.Scene, error)
	ReleaseScene(scene *assets.Scene) error
}

type MeshDrawer interface {
	DrawMesh(mesh *assets.Mesh, transform math.Mat4)
}

// Level holds the reference transforms and the two tracked objects of the
// level being played. Object 0 follows the origin marker and object 1 is
// localised relative to it.
type Level struct {
	id        int
	tolerance float32

	references []math.Mat4
	objects    []*GameObject
	// owned, released on reset
	scenes []*assets.Scene

	loader  SceneLoader
	tracker tracking.Tracker
}

func NewLevel(loader SceneLoader, tracker tracking.Tracker) *Level {
	return &Level{
		loader:  loader,
		tracker: tracker,
	}
}

// InitLevel loads the level with the given id. On failure the level is left
// empty and every scene loaded so far is released.
func (l *Level) InitLevel(id int, tolerance float32) error {
	if l.IsInitialized() {
		if err := l.ResetLevel(); err != nil {
			core.LogWarn("reset before init: %s", err)
		}
	}

	def, ok := levelDefinitions[id]
	if !ok {
		return fmt.Errorf("%w: %d", core.ErrUnknownLevel, id)
	}
	if !(tolerance > 0) || gomath.IsInf(float64(tolerance), 1) {
		return fmt.Errorf("%w: %v", core.ErrInvalidTolerance, tolerance)
	}

	objects := make([]*GameObject, 0, ObjectCount)
	for i, od := range def.objects {
		scene, err := l.loader.LoadScene(od.scene)
		if err != nil {
			l.releaseScenes()
			return fmt.Errorf("level %d object %d: %w", id, i, err)
		}
		l.scenes = append(l.scenes, scene)

		mesh, err := scene.CreatePrimaryMesh()
		if err != nil {
			l.releaseScenes()
			return fmt.Errorf("level %d object %d: %w", id, i, err)
		}

		obj := NewGameObject()
		obj.SetMesh(mesh)
		obj.SetMarker(od.marker)
		if od.local {
			obj.SetLocal()
		}
		obj.SetPosition(od.position.X, od.position.Y, od.position.Z)
		obj.SetRotation(od.rotation.X, od.rotation.Y, od.rotation.Z)
		obj.SetScale(od.scale)
		objects = append(objects, obj)
	}

	l.id = id
	l.tolerance = tolerance
	l.references = append(l.references[:0], def.references[:]...)
	l.objects = objects

	core.LogInfo("Level %d initialized (tolerance %.3f).", id, tolerance)
	return nil
}

// ResetLevel drops the objects and reference transforms and releases the
// level's scenes. Safe to call on an empty level.
func (l *Level) ResetLevel() error {
	l.references = nil
	l.objects = nil
	l.id = 0
	l.tolerance = 0
	return l.releaseScenes()
}

func (l *Level) releaseScenes() error {
	var errs []error
	for _, scene := range l.scenes {
		if err := l.loader.ReleaseScene(scene); err != nil {
			errs = append(errs, fmt.Errorf("release scene %s: %w", scene.Name, err))
		}
	}
	l.scenes = nil
	return errors.Join(errs...)
}

func (l *Level) IsInitialized() bool {
	return len(l.objects) == ObjectCount
}

// ReadyForUpdate deactivates both objects. SampleMarkers then reactivates the
// ones whose markers are visible this frame.
func (l *Level) ReadyForUpdate() {
	for _, o := range l.objects {
		o.SetActive(false)
	}
}

// SampleMarkers reads this frame's marker poses from the tracker. The
// secondary marker is only looked at when the origin marker is visible.
func (l *Level) SampleMarkers() (originFound, secondaryFound bool) {
	if !l.IsInitialized() {
		return false, false
	}
	origin, secondary := l.objects[0], l.objects[1]

	if !l.tracker.IsMarkerFound(origin.Marker()) {
		origin.SetActive(false)
		secondary.SetActive(false)
		return false, false
	}

	originPose := l.tracker.MarkerTransform(origin.Marker())
	origin.SetMarkerTransform(originPose)
	origin.SetActive(true)

	if !l.tracker.IsMarkerFound(secondary.Marker()) {
		secondary.SetActive(false)
		return true, false
	}

	secondaryPose := l.tracker.MarkerTransform(secondary.Marker())
	secondary.SetActive(true)

	// secondary pose measured in the origin marker's frame
	relative := secondaryPose.Mul(originPose.Inverse())
	secondary.SetMarkerTransform(originPose)
	secondary.SetLocalTransform(relative)

	return true, true
}

// GetUpdate steps and updates the active objects and reports whether both
// match their reference transforms.
func (l *Level) GetUpdate() bool {
	if !l.IsInitialized() {
		return false
	}
	origin, secondary := l.objects[0], l.objects[1]

	if !origin.IsActive() {
		return false
	}
	origin.Step()
	origin.Update()

	if !secondary.IsActive() {
		return false
	}
	secondary.Step()
	secondary.Update()

	return l.checkTransforms()
}

func (l *Level) checkTransforms() bool {
	passed := RowsWithinTolerance(l.objects[0].Transform(), l.references[0], l.tolerance, originTranslationFactor)
	passed += RowsWithinTolerance(l.objects[1].Transform(), l.references[1], l.tolerance, secondaryTranslationFactor)
	return passed == 2*4
}

/**
 * RowsWithinTolerance counts the rows of actual whose x, y and z components
 * all differ from reference by strictly less than the tolerance. The w column
 * is ignored. Row 3 (translation) uses tolerance*translationFactor.
 */
func RowsWithinTolerance(actual, reference math.Mat4, tolerance, translationFactor float32) int {
	passed := 0
	for row := 0; row < 4; row++ {
		limit := tolerance
		if row == 3 {
			limit = tolerance * translationFactor
		}
		a, r := actual.Row(row), reference.Row(row)
		if math.Abs(a.X-r.X) < limit &&
			math.Abs(a.Y-r.Y) < limit &&
			math.Abs(a.Z-r.Z) < limit {
			passed++
		}
	}
	return passed
}

// MarkersAreActive reports whether both markers were tracked this frame.
func (l *Level) MarkersAreActive() bool {
	return l.IsInitialized() && l.objects[0].IsActive() && l.objects[1].IsActive()
}

// Render draws the origin object when active, and the secondary object only
// when both are active.
func (l *Level) Render(drawer MeshDrawer) {
	if !l.IsInitialized() || !l.objects[0].IsActive() {
		return
	}
	drawer.DrawMesh(l.objects[0].Mesh(), l.objects[0].Transform())
	if l.objects[1].IsActive() {
		drawer.DrawMesh(l.objects[1].Mesh(), l.objects[1].Transform())
	}
}

// Transform returns the reference transform at index.
func (l *Level) Transform(index int) (math.Mat4, bool) {
	if index < 0 || index >= len(l.references) {
		return math.Mat4{}, false
	}
	return l.references[index], true
}

// GameObject returns the object at index, or nil.
func (l *Level) GameObject(index int) *GameObject {
	if index < 0 || index >= len(l.objects) {
		return nil
	}
	return l.objects[index]
}

// ID returns the level id, zero while the level is empty.
func (l *Level) ID() int {
	return l.id
}

func (l *Level) Tolerance() float32 {
	return l.tolerance
}
