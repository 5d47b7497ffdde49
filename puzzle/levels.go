package puzzle

import "github.com/spaghettifunk/arpuzzle/engine/math"

type objectDefinition struct {
	scene    string
	marker   int
	local    bool
	position math.Vec3
	rotation math.Vec3
	scale    float32
}

type levelDefinition struct {
	// expected world transforms of the origin and the secondary object
	references [2]math.Mat4
	objects    [2]objectDefinition
}

var levelDefinitions = map[int]levelDefinition{
	// a cylinder slotted into a pipe
	1: {
		references: [2]math.Mat4{
			math.NewMat4FromRows(
				math.NewVec4(0.067, -0.003, -0.002, 0),
				math.NewVec4(-0.003, -0.004, -0.067, 0),
				math.NewVec4(0.004, 0.067, -0.005, 0),
				math.NewVec4(0.012, 0.045, -0.504, 1),
			),
			math.NewMat4FromRows(
				math.NewVec4(0.05, -0.003, -0.001, 0),
				math.NewVec4(-0.002, -0.005, -0.05, 0),
				math.NewVec4(0.003, 0.05, -0.005, 0),
				math.NewVec4(0.013, 0.04, -0.5, 1),
			),
		},
		objects: [2]objectDefinition{
			{
				scene:    "pipe1",
				marker:   1,
				position: math.NewVec3(0, 0, 0.3),
				rotation: math.NewVec3(-0.785, 0, 0),
				scale:    0.05,
			},
			{
				scene:    "cylinder1",
				marker:   0,
				local:    true,
				position: math.NewVec3(0.2, 0, 0.32),
				rotation: math.NewVec3(-0.785, 0, 0),
				scale:    0.05 * 1.35,
			},
		},
	},
	// two hemispheres closing into a sphere
	2: {
		references: [2]math.Mat4{
			math.NewMat4FromRows(
				math.NewVec4(0, 0.007, -0.013, 0),
				math.NewVec4(-0.015, 0, 0, 0),
				math.NewVec4(0, 0.013, 0.007, 0),
				math.NewVec4(-0.005, 0.06, -0.763, 1),
			),
			math.NewMat4FromRows(
				math.NewVec4(0, -0.005, 0.009, 0),
				math.NewVec4(0.01, 0, 0, 0),
				math.NewVec4(0, 0.009, 0.005, 0),
				math.NewVec4(-0.046, 0.041, -0.501, 1),
			),
		},
		objects: [2]objectDefinition{
			{
				scene:    "hemi",
				marker:   1,
				position: math.NewVec3(0, 0, 0.1),
				rotation: math.NewVec3(0, 0, 1.57),
				scale:    0.01 * 1.5,
			},
			{
				scene:    "hemi",
				marker:   0,
				local:    true,
				position: math.NewVec3(0.05, 0, 0.2),
				rotation: math.NewVec3(0, 0, 0),
				scale:    0.01,
			},
		},
	},
}

const (
	FirstLevelID  = 1
	SecondLevelID = 2
)

// NextLevelID returns the level that follows id when switching levels.
func NextLevelID(id int) int {
	if id == FirstLevelID {
		return SecondLevelID
	}
	return FirstLevelID
}

// IsKnownLevel reports whether id names a defined level.
func IsKnownLevel(id int) bool {
	_, ok := levelDefinitions[id]
	return ok
}
