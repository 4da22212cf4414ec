package truss

import "gonum.org/v1/gonum/mat"

// Result is the complete output of one solve
type Result struct {
	// Global displacement vector, 3 entries (x, y, z) per node in node order
	Displacements []float64

	// Global reactions K·u rounded per Options.ReactionDecimals
	Reactions []float64

	// Global reactions K·u at full precision
	ExactReactions []float64

	// Per-element results in element order
	Members []MemberResult

	// Assembled global stiffness matrix before supports are applied
	Stiffness *mat.SymDense

	// Restrained global DOFs (0-based, ascending)
	Restrained []int

	nodeIDs   []string
	nodeIndex map[string]int
}

func newResult(nodes []Node, u, rounded, exact []float64, members []MemberResult, k *mat.SymDense, restrained []int) *Result {
	r := &Result{
		Displacements:  u,
		Reactions:      rounded,
		ExactReactions: exact,
		Members:        members,
		Stiffness:      k,
		Restrained:     restrained,
		nodeIDs:        make([]string, len(nodes)),
		nodeIndex:      make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		r.nodeIDs[i] = n.ID
		r.nodeIndex[n.ID] = i
	}
	return r
}

// NodeIDs returns node identifiers in DOF order
func (r *Result) NodeIDs() []string { return r.nodeIDs }

// NodeDisplacement returns the (ux, uy, uz) displacement of a node
func (r *Result) NodeDisplacement(id string) ([3]float64, bool) {
	return r.triple(r.Displacements, id)
}

// NodeReaction returns the rounded (Rx, Ry, Rz) reaction at a node
func (r *Result) NodeReaction(id string) ([3]float64, bool) {
	return r.triple(r.Reactions, id)
}

func (r *Result) triple(v []float64, id string) ([3]float64, bool) {
	i, ok := r.nodeIndex[id]
	if !ok {
		return [3]float64{}, false
	}
	x, y, z := dofsOf(i)
	return [3]float64{v[x], v[y], v[z]}, true
}

// Member returns the result of one element
func (r *Result) Member(id string) (MemberResult, bool) {
	for _, m := range r.Members {
		if m.ID == id {
			return m, true
		}
	}
	return MemberResult{}, false
}

// MemberForces maps element id to axial force (positive = compression)
func (r *Result) MemberForces() map[string]float64 {
	return r.memberMap(func(m MemberResult) float64 { return m.Force })
}

// MemberStresses maps element id to axial stress (positive = compression)
func (r *Result) MemberStresses() map[string]float64 {
	return r.memberMap(func(m MemberResult) float64 { return m.Stress })
}

// MemberLengths maps element id to length
func (r *Result) MemberLengths() map[string]float64 {
	return r.memberMap(func(m MemberResult) float64 { return m.Length })
}

func (r *Result) memberMap(value func(MemberResult) float64) map[string]float64 {
	out := make(map[string]float64, len(r.Members))
	for _, m := range r.Members {
		out[m.ID] = value(m)
	}
	return out
}

// IsRestrained reports whether global DOF d is fixed by a support
func (r *Result) IsRestrained(d int) bool {
	for _, x := range r.Restrained {
		if x == d {
			return true
		}
	}
	return false
}
