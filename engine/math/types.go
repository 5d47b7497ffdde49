package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector, used for matrix rows.
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief a 4x4 matrix, used to represent object and marker transformations.
 * The layout is row-major: row r starts at Data[r*4]. The translation lives
 * in the last row (Data[12], Data[13], Data[14]) and points are treated as
 * row vectors, so a.Mul(b) applies a first and then b.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}
