package tracking

import "github.com/spaghettifunk/arpuzzle/engine/math"

// Tracker is the marker tracking oracle. Update is called once per frame,
// before any marker is queried, and the answers stay fixed until the next
// Update. A marker that is not found is a normal outcome, not an error.
type Tracker interface {
	// Update samples the next camera frame.
	Update() error
	IsMarkerFound(id int) bool
	// MarkerTransform returns the pose of the marker in camera space. The
	// result is only meaningful when IsMarkerFound(id) is true.
	MarkerTransform(id int) math.Mat4
}

// Static is a tracker whose answers only change when told to. Update is a no-op.
type Static struct {
	poses map[int]math.Mat4
}

func NewStatic() *Static {
	return &Static{poses: make(map[int]math.Mat4)}
}

func (s *Static) Update() error {
	return nil
}

// Show makes the marker visible with the given pose.
func (s *Static) Show(id int, pose math.Mat4) {
	s.poses[id] = pose
}

// Hide makes the marker invisible.
func (s *Static) Hide(id int) {
	delete(s.poses, id)
}

func (s *Static) IsMarkerFound(id int) bool {
	_, ok := s.poses[id]
	return ok
}

func (s *Static) MarkerTransform(id int) math.Mat4 {
	if pose, ok := s.poses[id]; ok {
		return pose
	}
	return math.NewMat4Identity()
}
