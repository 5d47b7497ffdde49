package puzzle

import (
	"github.com/spaghettifunk/arpuzzle/engine/assets"
	"github.com/spaghettifunk/arpuzzle/engine/math"
)

// Speed below which an axis counts as stationary.
const MovingThreshold float32 = 0.01

// GameObject is a trackable mesh instance. Its world transform is cached and
// only recomputed by Update when a setter marked it dirty or while it moves.
type GameObject struct {
	// non-owning, the level's scenes own the mesh
	mesh *assets.Mesh

	position  math.Vec3
	velocity  math.Vec3
	rotationX float32
	rotationY float32
	rotationZ float32
	scale     float32

	dirty  bool
	active bool

	marker         int
	isMarkerObject bool
	isLocal        bool

	localTransform  math.Mat4
	markerTransform math.Mat4
	transform       math.Mat4
}

func NewGameObject() *GameObject {
	return &GameObject{
		scale:           1,
		localTransform:  math.NewMat4Identity(),
		markerTransform: math.NewMat4Identity(),
		transform:       math.NewMat4Identity(),
	}
}

/**
 * Compose builds a world transform in the order
 * scale, rotate x, rotate y, rotate z, translate, local offset, marker frame.
 * The local offset and the marker frame are skipped when nil.
 */
func Compose(scale, rx, ry, rz float32, position math.Vec3, local, marker *math.Mat4) math.Mat4 {
	transform := math.NewMat4UniformScale(scale)
	transform = transform.Mul(math.NewMat4EulerX(rx))
	transform = transform.Mul(math.NewMat4EulerY(ry))
	transform = transform.Mul(math.NewMat4EulerZ(rz))
	transform = transform.Mul(math.NewMat4Translation(position))
	if local != nil {
		transform = transform.Mul(*local)
	}
	if marker != nil {
		transform = transform.Mul(*marker)
	}
	return transform
}

// Update recomputes the cached transform if it is stale. It never moves the
// object, see Step.
func (o *GameObject) Update() {
	if !o.dirty && !o.IsMoving() {
		return
	}

	var local, marker *math.Mat4
	if o.isLocal {
		local = &o.localTransform
	}
	if o.isMarkerObject {
		marker = &o.markerTransform
	}
	o.transform = Compose(o.scale, o.rotationX, o.rotationY, o.rotationZ, o.position, local, marker)
	o.dirty = false
}

// Step advances the position by one velocity increment.
func (o *GameObject) Step() {
	if !o.IsMoving() {
		return
	}
	o.position = o.position.Add(o.velocity)
	o.dirty = true
}

func (o *GameObject) IsMoving() bool {
	return math.Abs(o.velocity.X) > MovingThreshold ||
		math.Abs(o.velocity.Y) > MovingThreshold ||
		math.Abs(o.velocity.Z) > MovingThreshold
}

func (o *GameObject) SetMesh(mesh *assets.Mesh) {
	o.mesh = mesh
}

func (o *GameObject) Mesh() *assets.Mesh {
	return o.mesh
}

func (o *GameObject) SetPosition(x, y, z float32) {
	o.position = math.NewVec3(x, y, z)
	o.dirty = true
}

func (o *GameObject) Position() math.Vec3 {
	return o.position
}

// SetVelocity does not mark the transform dirty. Moving objects are
// recomputed on every Update anyway.
func (o *GameObject) SetVelocity(x, y, z float32) {
	o.velocity = math.NewVec3(x, y, z)
}

func (o *GameObject) Velocity() math.Vec3 {
	return o.velocity
}

func (o *GameObject) SetRotation(x, y, z float32) {
	o.rotationX = x
	o.rotationY = y
	o.rotationZ = z
	o.dirty = true
}

// Rotation returns the euler angles in radians.
func (o *GameObject) Rotation() math.Vec3 {
	return math.NewVec3(o.rotationX, o.rotationY, o.rotationZ)
}

func (o *GameObject) SetScale(scale float32) {
	o.scale = scale
	o.dirty = true
}

func (o *GameObject) Scale() float32 {
	return o.scale
}

func (o *GameObject) SetActive(active bool) {
	o.active = active
}

func (o *GameObject) IsActive() bool {
	return o.active
}

// SetMarker binds the object to a tracked marker. Its marker frame is then
// applied after every other part of the transform.
func (o *GameObject) SetMarker(id int) {
	o.marker = id
	o.isMarkerObject = true
	o.dirty = true
}

func (o *GameObject) Marker() int {
	return o.marker
}

func (o *GameObject) IsMarkerObject() bool {
	return o.isMarkerObject
}

// SetLocal enables the local offset transform.
func (o *GameObject) SetLocal() {
	o.isLocal = true
	o.dirty = true
}

func (o *GameObject) IsLocal() bool {
	return o.isLocal
}

func (o *GameObject) SetMarkerTransform(transform math.Mat4) {
	o.markerTransform = transform
	o.dirty = true
}

func (o *GameObject) MarkerTransform() math.Mat4 {
	return o.markerTransform
}

func (o *GameObject) SetLocalTransform(transform math.Mat4) {
	o.localTransform = transform
	o.dirty = true
}

func (o *GameObject) LocalTransform() math.Mat4 {
	return o.localTransform
}

func (o *GameObject) IsDirty() bool {
	return o.dirty
}

// Transform returns the cached world transform as of the last Update.
func (o *GameObject) Transform() math.Mat4 {
	return o.transform
}
