// core/geom/geom.go
package geom

// Vec2 is a point in the horizontal plane of the project box.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point in local project-box coordinates (z = elevation).
type Vec3 struct {
	X, Y, Z float64
}

// Index3 addresses a cell in a regular 3D grid.
type Index3 struct {
	X, Y, Z int
}

// Count returns the number of cells in a grid of this resolution.
func (i Index3) Count() int { return i.X * i.Y * i.Z }
