package truss

import "math"

// Point is a position in the global frame
type Point struct {
	X, Y, Z float64
}

// Kinematics holds the derived geometry of an element
type Kinematics struct {
	Cx, Cy, Cz float64 // direction cosines of the from -> to axis
	Length     float64
}

// ElementKinematics computes length and direction cosines of the segment
// from -> to. A zero (or non-finite) length is a DegenerateElementError.
func ElementKinematics(id string, from, to Point) (Kinematics, error) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dz := to.Z - from.Z
	l := math.Sqrt(dx*dx + dy*dy + dz*dz)

	if !(l > 0) || math.IsInf(l, 0) {
		return Kinematics{}, &DegenerateElementError{Element: id, Length: l}
	}

	return Kinematics{
		Cx:     dx / l,
		Cy:     dy / l,
		Cz:     dz / l,
		Length: l,
	}, nil
}

// dofsOf returns the global DOF indices (x, y, z) of the node at 0-based
// index i.
func dofsOf(i int) (int, int, int) {
	return 3 * i, 3*i + 1, 3*i + 2
}

// elementDOFs returns the six global DOFs of an element between nodes i and j
func elementDOFs(i, j int) [6]int {
	ix, iy, iz := dofsOf(i)
	jx, jy, jz := dofsOf(j)
	return [6]int{ix, iy, iz, jx, jy, jz}
}
