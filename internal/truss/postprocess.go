package truss

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// NoRounding disables a rounding step when used as a decimals option
const NoRounding = -1

// MemberResult holds the axial response of one element.
//
// Sign convention: Force and Stress are positive in compression and
// negative in tension.
type MemberResult struct {
	ID     string
	Length float64

	// Global end displacements (ux, uy, uz) at from, then at to
	LocalDisplacement [6]float64

	// Axial end responses k·(T·d) at from and to. Force and Stress are
	// the first entries.
	ForcePair  [2]float64
	StressPair [2]float64

	Force  float64
	Stress float64
}

// expandDisplacements scatters the reduced solution back into a full DOF
// vector. Restrained DOFs stay zero; free DOFs take the reduced values in
// ascending order.
func expandDisplacements(n int, free []int, reduced []float64) []float64 {
	u := make([]float64, n)
	for r, d := range free {
		u[d] = reduced[r]
	}
	return u
}

// reactions computes K·u
func reactions(k mat.Symmetric, u []float64) []float64 {
	var r mat.VecDense
	r.MulVec(k, mat.NewVecDense(len(u), u))

	out := make([]float64, len(u))
	copy(out, r.RawVector().Data)
	return out
}

// roundAll rounds every value half-to-even at the given precision, in place
func roundAll(v []float64, decimals int) []float64 {
	if decimals == NoRounding {
		return v
	}
	for i := range v {
		v[i] = scalar.RoundEven(v[i], decimals)
	}
	return v
}

// memberResponse derives displacement, force, stress and length of one
// element from the full displacement vector.
func memberResponse(e Element, k Kinematics, u []float64, decimals int) MemberResult {
	var d [6]float64
	for a, dof := range elementDOFs(e.I, e.J) {
		d[a] = u[dof]
	}
	roundAll(d[:], decimals)

	force := localResponse(axial(e.E*e.A/k.Length), k, d)
	stress := localResponse(axial(e.E/k.Length), k, d)

	return MemberResult{
		ID:                e.ID,
		Length:            k.Length,
		LocalDisplacement: d,
		ForcePair:         force,
		StressPair:        stress,
		Force:             force[0],
		Stress:            stress[0],
	}
}
