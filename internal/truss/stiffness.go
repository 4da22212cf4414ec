package truss

import "gonum.org/v1/gonum/mat"

// transformation builds the 2x6 matrix taking the six global end
// displacements of an element to its two axial displacements.
func transformation(k Kinematics) *mat.Dense {
	return mat.NewDense(2, 6, []float64{
		k.Cx, k.Cy, k.Cz, 0, 0, 0,
		0, 0, 0, k.Cx, k.Cy, k.Cz,
	})
}

// axial returns scale·[[1,-1],[-1,1]], the two-node axial behavior matrix.
// With scale = EA/L it is the local stiffness, with E/L the stress operator.
func axial(scale float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		scale, -scale,
		-scale, scale,
	})
}

// toGlobal rotates a symmetric 2x2 local matrix into the 6x6 global frame,
// Tᵗ·local·T. The upper triangle is mirrored so the result is exactly
// symmetric.
func toGlobal(local mat.Matrix, k Kinematics) *mat.SymDense {
	t := transformation(k)

	var tl, full mat.Dense
	tl.Mul(t.T(), local)
	full.Mul(&tl, t)

	ke := mat.NewSymDense(6, nil)
	for i := 0; i < 6; i++ {
		for j := i; j < 6; j++ {
			ke.SetSym(i, j, full.At(i, j))
		}
	}
	return ke
}

// localResponse applies a 2x2 local matrix to the axial components of the
// global end displacements d: local·(T·d).
func localResponse(local mat.Matrix, k Kinematics, d [6]float64) [2]float64 {
	t := transformation(k)

	var u, r mat.VecDense
	u.MulVec(t, mat.NewVecDense(6, d[:]))
	r.MulVec(local, &u)

	return [2]float64{r.AtVec(0), r.AtVec(1)}
}

// ElementStiffness returns the 6x6 global-frame stiffness of a truss
// element. It carries axial stiffness only and has rank one.
func ElementStiffness(e, a float64, k Kinematics) *mat.SymDense {
	return toGlobal(axial(e*a/k.Length), k)
}
