package truss

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Support fixes some of the translations of a node
type Support struct {
	Node  int // 0-based node index
	Fixed [3]bool
}

// RestrainedDOFs returns the sorted global DOF indices fixed by supports
// for a structure of n nodes.
func RestrainedDOFs(n int, supports []Support) ([]int, error) {
	var dofs []int
	for _, s := range supports {
		if s.Node < 0 || s.Node >= n {
			return nil, &OverconstrainedOrInvalidSupportError{
				Reason: fmt.Sprintf("node index %d out of range [0, %d)", s.Node, n),
			}
		}
		x, y, z := dofsOf(s.Node)
		for axis, dof := range [3]int{x, y, z} {
			if s.Fixed[axis] {
				dofs = append(dofs, dof)
			}
		}
	}
	slices.Sort(dofs)
	return slices.Compact(dofs), nil
}

// Reduce removes the restrained rows and columns from k and the matching
// entries from f. It also returns the free DOFs in ascending order, which
// is the order of the reduced system.
func Reduce(k mat.Symmetric, f []float64, restrained []int) (*mat.SymDense, []float64, []int, error) {
	n := k.SymmetricDim()
	if len(f) != n {
		return nil, nil, nil, fmt.Errorf("force vector length %d does not match matrix order %d", len(f), n)
	}
	if len(restrained) == 0 {
		return nil, nil, nil, &OverconstrainedOrInvalidSupportError{Reason: "no restrained degrees of freedom"}
	}

	fixed := make([]bool, n)
	for _, d := range restrained {
		if d < 0 || d >= n {
			return nil, nil, nil, &OverconstrainedOrInvalidSupportError{
				Reason: fmt.Sprintf("restrained DOF %d out of range [0, %d)", d, n),
			}
		}
		fixed[d] = true
	}

	free := make([]int, 0, n)
	for d := 0; d < n; d++ {
		if !fixed[d] {
			free = append(free, d)
		}
	}
	if len(free) == 0 {
		return nil, nil, nil, &OverconstrainedOrInvalidSupportError{Reason: "every degree of freedom is restrained"}
	}

	kr := mat.NewSymDense(len(free), nil)
	fr := make([]float64, len(free))
	for r, gr := range free {
		fr[r] = f[gr]
		for c := r; c < len(free); c++ {
			kr.SetSym(r, c, k.At(gr, free[c]))
		}
	}

	return kr, fr, free, nil
}
