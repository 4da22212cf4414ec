package truss

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultMaxCondition is the largest condition number of a reduced
// stiffness matrix accepted as non-singular.
const DefaultMaxCondition = 1e13

// solveReduced solves k·u = f by LU factorization
func solveReduced(k mat.Symmetric, f []float64, maxCond float64) ([]float64, error) {
	var lu mat.LU
	lu.Factorize(k)

	cond := lu.Cond()
	if math.IsNaN(cond) || cond > maxCond {
		return nil, &SingularStiffnessMatrixError{Condition: cond}
	}

	var u mat.VecDense
	if err := lu.SolveVecTo(&u, false, mat.NewVecDense(len(f), f)); err != nil {
		return nil, &SingularStiffnessMatrixError{Condition: cond}
	}

	return u.RawVector().Data, nil
}
