package truss

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// ElementBlock is an element stiffness matrix with the indices of the two
// nodes it connects.
type ElementBlock struct {
	K    *mat.SymDense
	I, J int
}

// Assembler accumulates element stiffness blocks into the global
// stiffness matrix. It owns the matrix until Matrix is called.
type Assembler struct {
	k *mat.SymDense
}

// NewAssembler starts an empty 3n x 3n global matrix for n nodes
func NewAssembler(n int) *Assembler {
	return &Assembler{k: mat.NewSymDense(3*n, nil)}
}

// Add scatters a 6x6 element block between nodes i and j into the global
// matrix. i and j must differ.
func (a *Assembler) Add(ke mat.Symmetric, i, j int) {
	dofs := elementDOFs(i, j)
	for r := 0; r < 6; r++ {
		for c := r; c < 6; c++ {
			gr, gc := dofs[r], dofs[c]
			a.k.SetSym(gr, gc, a.k.At(gr, gc)+ke.At(r, c))
		}
	}
}

// Matrix hands the assembled matrix over to the caller. The assembler is
// empty afterwards.
func (a *Assembler) Matrix() *mat.SymDense {
	k := a.k
	a.k = nil
	return k
}

// Assemble folds every element block into a new 3n x 3n global stiffness
// matrix. Blocks are summed in a canonical order so any permutation of
// blocks gives a bit-identical matrix.
func Assemble(n int, blocks []ElementBlock) *mat.SymDense {
	ordered := slices.Clone(blocks)
	slices.SortStableFunc(ordered, compareBlocks)

	a := NewAssembler(n)
	for _, b := range ordered {
		a.Add(b.K, b.I, b.J)
	}
	return a.Matrix()
}

func compareBlocks(x, y ElementBlock) int {
	if c := cmp.Compare(x.I, y.I); c != 0 {
		return c
	}
	if c := cmp.Compare(x.J, y.J); c != 0 {
		return c
	}
	return slices.Compare(x.K.RawSymmetric().Data, y.K.RawSymmetric().Data)
}
