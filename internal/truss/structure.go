// Package truss analyzes pin-jointed space trusses with the direct
// stiffness method.
//
// Member forces and stresses are reported positive in compression and
// negative in tension.
package truss

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alexiusacademia/gotruss/internal/model"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Node is a joint of the structure
type Node struct {
	ID string
	Point
}

// Element is a two-force member between nodes I and J (0-based indices)
type Element struct {
	ID   string
	I, J int
	E    float64 // modulus of elasticity
	A    float64 // cross-sectional area
}

// Options control rounding and numerical tolerances of a solve
type Options struct {
	// Decimal places for reactions, NoRounding keeps full precision
	ReactionDecimals int

	// Decimal places for element end displacements used to derive member
	// forces and stresses, NoRounding keeps full precision
	DisplacementDecimals int

	// Reduced stiffness matrices with a larger condition number are
	// reported as singular
	MaxCondition float64

	// Number of goroutines building element stiffness matrices, <= 1 is serial
	Workers int
}

// DefaultOptions rounds reactions to integers and end displacements to 5
// decimal places.
func DefaultOptions() Options {
	return Options{
		ReactionDecimals:     0,
		DisplacementDecimals: 5,
		MaxCondition:         DefaultMaxCondition,
		Workers:              1,
	}
}

// Structure is an immutable, indexed truss ready to be solved. A single
// Structure may be solved any number of times; each solve owns its
// matrices.
type Structure struct {
	Name string

	nodes     []Node
	elements  []Element
	supports  []Support
	loads     [][3]float64
	loadCases map[string][][3]float64
	nodeIndex map[string]int
	opts      Options
}

// New resolves a definition into a Structure. Element node references,
// materials and loads are checked here; geometry is checked on Solve.
func New(def *model.Definition, opts Options) (*Structure, error) {
	if opts.MaxCondition <= 0 {
		opts.MaxCondition = DefaultMaxCondition
	}

	s := &Structure{
		Name:      def.Name,
		nodeIndex: make(map[string]int, len(def.Nodes)),
		opts:      opts,
	}

	for i, n := range def.Nodes {
		if _, dup := s.nodeIndex[n.ID]; dup {
			return nil, &InconsistentTopologyError{Node: n.ID, Reason: "duplicate node id"}
		}
		s.nodeIndex[n.ID] = i
		s.nodes = append(s.nodes, Node{ID: n.ID, Point: Point{X: n.X, Y: n.Y, Z: n.Z}})
	}

	seen := make(map[string]bool, len(def.Elements))
	for _, e := range def.Elements {
		if seen[e.ID] {
			return nil, &InconsistentTopologyError{Element: e.ID, Reason: "duplicate element id"}
		}
		seen[e.ID] = true

		el, err := s.resolveElement(def, e)
		if err != nil {
			return nil, err
		}
		s.elements = append(s.elements, el)
	}

	for _, id := range slices.Sorted(maps.Keys(def.Supports)) {
		sup, err := s.resolveSupport(id, def.Supports[id])
		if err != nil {
			return nil, err
		}
		s.supports = append(s.supports, sup)
	}

	loads, err := s.resolveLoads(def.Forces)
	if err != nil {
		return nil, err
	}
	s.loads = loads

	if len(def.LoadCases) > 0 {
		s.loadCases = make(map[string][][3]float64, len(def.LoadCases))
		for _, name := range slices.Sorted(maps.Keys(def.LoadCases)) {
			c, err := s.resolveLoads(def.LoadCases[name])
			if err != nil {
				return nil, fmt.Errorf("load case %s: %w", name, err)
			}
			s.loadCases[name] = c
		}
	}

	return s, nil
}

func (s *Structure) resolveElement(def *model.Definition, e model.ElementDef) (Element, error) {
	i, ok := s.nodeIndex[e.From]
	if !ok {
		return Element{}, &InconsistentTopologyError{Element: e.ID, Node: e.From, Reason: "unknown start node"}
	}
	j, ok := s.nodeIndex[e.To]
	if !ok {
		return Element{}, &InconsistentTopologyError{Element: e.ID, Node: e.To, Reason: "unknown end node"}
	}

	modulus, ok := def.Elasticity[e.ID]
	if !ok {
		name, hasMaterial := def.Materials[e.ID]
		if !hasMaterial {
			return Element{}, &InconsistentTopologyError{Element: e.ID, Reason: "no elasticity or material given"}
		}
		if modulus, ok = nscp.Modulus(name); !ok {
			return Element{}, &InconsistentTopologyError{Element: e.ID, Reason: fmt.Sprintf("unknown material %q", name)}
		}
	}

	area, ok := def.CrossArea[e.ID]
	if !ok {
		return Element{}, &InconsistentTopologyError{Element: e.ID, Reason: "no cross-sectional area given"}
	}

	return Element{ID: e.ID, I: i, J: j, E: modulus, A: area}, nil
}

func (s *Structure) resolveSupport(id string, flags []int) (Support, error) {
	i, ok := s.nodeIndex[id]
	if !ok {
		return Support{}, &OverconstrainedOrInvalidSupportError{Node: id, Reason: "unknown node"}
	}

	var fixed [3]bool
	for a, f := range flags {
		if f != 0 && f != 1 {
			return Support{}, &OverconstrainedOrInvalidSupportError{Node: id, Reason: fmt.Sprintf("restraint flag %d is not 0 or 1", f)}
		}
		if a < 3 {
			fixed[a] = f == 1
		}
	}

	switch len(flags) {
	case 3:
	case 2:
		// a two-flag support restrains z together with y
		fixed[2] = fixed[1]
	default:
		return Support{}, &OverconstrainedOrInvalidSupportError{Node: id, Reason: fmt.Sprintf("want 2 or 3 restraint flags, got %d", len(flags))}
	}

	return Support{Node: i, Fixed: fixed}, nil
}

func (s *Structure) resolveLoads(forces map[string][]float64) ([][3]float64, error) {
	loads := make([][3]float64, len(s.nodes))
	for _, id := range slices.Sorted(maps.Keys(forces)) {
		i, ok := s.nodeIndex[id]
		if !ok {
			return nil, &InconsistentTopologyError{Node: id, Reason: "force applied to unknown node"}
		}
		loads[i] = model.ForceVector(forces[id])
	}
	return loads, nil
}

// Nodes returns the nodes in DOF order
func (s *Structure) Nodes() []Node { return s.nodes }

// Elements returns the elements in definition order
func (s *Structure) Elements() []Element { return s.elements }

// Loads returns the applied nodal forces, one entry per node
func (s *Structure) Loads() [][3]float64 { return s.loads }

// LoadCases returns the unfactored load cases keyed by load type
func (s *Structure) LoadCases() map[string][][3]float64 { return s.loadCases }

// Solve analyzes the structure under its applied forces
func (s *Structure) Solve() (*Result, error) {
	return s.SolveLoads(s.loads)
}

// SolveLoads analyzes the structure under the given nodal forces, one
// entry per node. Nothing is returned unless every stage succeeds.
func (s *Structure) SolveLoads(loads [][3]float64) (*Result, error) {
	n := len(s.nodes)
	if len(loads) != n {
		return nil, fmt.Errorf("got loads for %d nodes, structure has %d", len(loads), n)
	}

	kins, blocks, err := s.elementStiffnesses()
	if err != nil {
		return nil, err
	}

	k := Assemble(n, blocks)

	restrained, err := RestrainedDOFs(n, s.supports)
	if err != nil {
		return nil, err
	}

	f := make([]float64, 3*n)
	for i, l := range loads {
		x, y, z := dofsOf(i)
		f[x], f[y], f[z] = l[0], l[1], l[2]
	}

	kr, fr, free, err := Reduce(k, f, restrained)
	if err != nil {
		return nil, err
	}

	ur, err := solveReduced(kr, fr, s.opts.MaxCondition)
	if err != nil {
		return nil, err
	}

	u := expandDisplacements(3*n, free, ur)
	exact := reactions(k, u)
	rounded := roundAll(append([]float64(nil), exact...), s.opts.ReactionDecimals)

	members := make([]MemberResult, len(s.elements))
	for idx, e := range s.elements {
		members[idx] = memberResponse(e, kins[idx], u, s.opts.DisplacementDecimals)
	}

	return newResult(s.nodes, u, rounded, exact, members, k, restrained), nil
}

// Stiffness assembles the unreduced global stiffness matrix
func (s *Structure) Stiffness() (*mat.SymDense, error) {
	_, blocks, err := s.elementStiffnesses()
	if err != nil {
		return nil, err
	}
	return Assemble(len(s.nodes), blocks), nil
}

// elementStiffnesses derives kinematics and the global-frame stiffness of
// every element. With more than one worker the elements are processed
// concurrently; the first failing element in definition order is reported.
func (s *Structure) elementStiffnesses() ([]Kinematics, []ElementBlock, error) {
	kins := make([]Kinematics, len(s.elements))
	blocks := make([]ElementBlock, len(s.elements))
	errs := make([]error, len(s.elements))

	build := func(idx int) error {
		e := s.elements[idx]
		k, err := ElementKinematics(e.ID, s.nodes[e.I].Point, s.nodes[e.J].Point)
		if err != nil {
			errs[idx] = err
			return err
		}
		kins[idx] = k
		blocks[idx] = ElementBlock{K: ElementStiffness(e.E, e.A, k), I: e.I, J: e.J}
		return nil
	}

	if s.opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(s.opts.Workers)
		for idx := range s.elements {
			g.Go(func() error { return build(idx) })
		}
		if err := g.Wait(); err == nil {
			return kins, blocks, nil
		}
	} else {
		for idx := range s.elements {
			if err := build(idx); err != nil {
				return nil, nil, err
			}
		}
		return kins, blocks, nil
	}

	// Wait reports whichever goroutine failed first in time
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return kins, blocks, nil
}
