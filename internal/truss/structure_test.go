package truss

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gotruss/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bar is a single member along x from node 1 at the origin to node 2 at
// (10, 0, 0). Node 1 is pinned and node 2 rolls along the member axis.
func bar(fx float64) *model.Definition {
	return &model.Definition{
		Nodes: []model.NodeDef{
			{ID: "1"},
			{ID: "2", X: 10},
		},
		Elements: []model.ElementDef{
			{ID: "1", From: "1", To: "2"},
		},
		Supports: map[string][]int{
			"1": {1, 1, 1},
			"2": {0, 1, 1},
		},
		Forces:     map[string][]float64{"2": {fx, 0, 0}},
		Elasticity: map[string]float64{"1": 200},
		CrossArea:  map[string]float64{"1": 1},
	}
}

// tripod has three pinned base nodes and a loaded apex
func tripod() *model.Definition {
	return &model.Definition{
		Name: "tripod",
		Nodes: []model.NodeDef{
			{ID: "A"},
			{ID: "B", X: 4},
			{ID: "C", Y: 4},
			{ID: "D", X: 1, Y: 1, Z: 3},
		},
		Elements: []model.ElementDef{
			{ID: "AD", From: "A", To: "D"},
			{ID: "BD", From: "B", To: "D"},
			{ID: "DC", From: "D", To: "C"},
		},
		Supports: map[string][]int{
			"A": {1, 1, 1},
			"B": {1, 1, 1},
			"C": {1, 1, 1},
		},
		Forces:     map[string][]float64{"D": {10, -5, -20}},
		Elasticity: map[string]float64{"AD": 200000, "BD": 200000, "DC": 70000},
		CrossArea:  map[string]float64{"AD": 100, "BD": 150, "DC": 120},
	}
}

func exactOptions() Options {
	opts := DefaultOptions()
	opts.ReactionDecimals = NoRounding
	opts.DisplacementDecimals = NoRounding
	return opts
}

func solve(t *testing.T, def *model.Definition, opts Options) *Result {
	t.Helper()
	s, err := New(def, opts)
	require.NoError(t, err)
	res, err := s.Solve()
	require.NoError(t, err)
	return res
}

func TestSingleBarCompression(t *testing.T) {
	res := solve(t, bar(-50), DefaultOptions())

	u2, ok := res.NodeDisplacement("2")
	require.True(t, ok)
	assert.InDelta(t, -2.5, u2[0], 1e-12)
	assert.InDelta(t, 0, u2[1], 1e-12)
	assert.InDelta(t, 0, u2[2], 1e-12)

	r1, ok := res.NodeReaction("1")
	require.True(t, ok)
	assert.Equal(t, [3]float64{50, 0, 0}, r1)

	m, ok := res.Member("1")
	require.True(t, ok)
	assert.InDelta(t, 50, m.Force, 1e-9, "compression is positive")
	assert.InDelta(t, 50, m.Stress, 1e-9)
	assert.InDelta(t, -50, m.ForcePair[1], 1e-9)
	assert.InDelta(t, 10, m.Length, 1e-12)

	assert.Equal(t, map[string]float64{"1": 10}, res.MemberLengths())
}

func TestSingleBarTension(t *testing.T) {
	res := solve(t, bar(30), DefaultOptions())

	assert.InDelta(t, -30, res.MemberForces()["1"], 1e-9, "tension is negative")
	assert.InDelta(t, -30, res.MemberStresses()["1"], 1e-9)
}

func TestMemberForceEqualsAxialLoad(t *testing.T) {
	tests := []struct {
		name string
		e, a float64
		load float64
	}{
		{"steel rod", 200000, 314.16, -12000},
		{"aluminum tube", 70000, 50, 800},
		{"unit", 1, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := bar(tt.load)
			def.Elasticity["1"] = tt.e
			def.CrossArea["1"] = tt.a

			res := solve(t, def, exactOptions())
			assert.InDelta(t, -tt.load, res.Members[0].Force, 1e-9*math.Abs(tt.load))
			assert.InDelta(t, -tt.load/tt.a, res.Members[0].Stress, 1e-9*math.Abs(tt.load/tt.a))
		})
	}
}

func TestGlobalEquilibrium(t *testing.T) {
	def := tripod()
	res := solve(t, def, exactOptions())

	var sum [3]float64
	for i := range res.NodeIDs() {
		for a := 0; a < 3; a++ {
			sum[a] += res.ExactReactions[3*i+a]
		}
	}

	// reactions at supports balance the applied load; K·u at the loaded
	// node returns the load itself, so restrict to restrained DOFs
	var supportSum [3]float64
	for _, d := range res.Restrained {
		supportSum[d%3] += res.ExactReactions[d]
	}
	load := def.Forces["D"]
	for a := 0; a < 3; a++ {
		assert.InDelta(t, -load[a], supportSum[a], 1e-8)
		assert.InDelta(t, 0, sum[a], 1e-8)
	}
}

func TestFreeDOFsCarryAppliedLoad(t *testing.T) {
	res := solve(t, tripod(), exactOptions())

	d, ok := res.NodeDisplacement("D")
	require.True(t, ok)
	assert.NotZero(t, d[2])

	for i, want := range []float64{10, -5, -20} {
		assert.InDelta(t, want, res.ExactReactions[9+i], 1e-8)
	}
}

func TestRestrainedDisplacementsAreZero(t *testing.T) {
	res := solve(t, tripod(), DefaultOptions())

	require.Len(t, res.Restrained, 9)
	for _, d := range res.Restrained {
		assert.Equal(t, 0.0, res.Displacements[d], "dof %d", d)
	}
}

func TestStrainRoundTrip(t *testing.T) {
	def := tripod()
	s, err := New(def, exactOptions())
	require.NoError(t, err)
	res, err := s.Solve()
	require.NoError(t, err)

	for idx, e := range s.Elements() {
		k, err := ElementKinematics(e.ID, s.Nodes()[e.I].Point, s.Nodes()[e.J].Point)
		require.NoError(t, err)

		ui, _ := res.NodeDisplacement(s.Nodes()[e.I].ID)
		uj, _ := res.NodeDisplacement(s.Nodes()[e.J].ID)
		elongation := (uj[0]-ui[0])*k.Cx + (uj[1]-ui[1])*k.Cy + (uj[2]-ui[2])*k.Cz
		strain := elongation / k.Length

		m := res.Members[idx]
		assert.InDelta(t, -e.E*strain, m.Stress, 1e-9, e.ID)
		assert.InDelta(t, m.Stress*e.A, m.Force, 1e-7, e.ID)
		assert.InDelta(t, -m.ForcePair[0], m.ForcePair[1], 1e-9, e.ID)
	}
}

func TestUnderRestrainedIsSingular(t *testing.T) {
	tests := []struct {
		name     string
		supports map[string][]int
	}{
		{"free end", map[string][]int{"1": {1, 1, 1}}},
		{"free lateral", map[string][]int{"1": {1, 1, 1}, "2": {1, 0, 0}}},
		{"rigid body slide", map[string][]int{"1": {0, 1, 1}, "2": {0, 1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := bar(-50)
			def.Supports = tt.supports

			s, err := New(def, DefaultOptions())
			require.NoError(t, err)
			res, err := s.Solve()
			assert.Nil(t, res)

			var singular *SingularStiffnessMatrixError
			assert.True(t, errors.As(err, &singular), "got %v", err)
		})
	}
}

func TestSupportErrors(t *testing.T) {
	tests := []struct {
		name     string
		supports map[string][]int
		atSolve  bool
	}{
		{"unknown node", map[string][]int{"9": {1, 1, 1}}, false},
		{"flag out of range", map[string][]int{"1": {1, 2, 1}}, false},
		{"too many flags", map[string][]int{"1": {1, 1, 1, 1}}, false},
		{"single flag", map[string][]int{"1": {1}}, false},
		{"no supports", map[string][]int{}, true},
		{"everything fixed", map[string][]int{"1": {1, 1, 1}, "2": {1, 1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := bar(-50)
			def.Supports = tt.supports

			s, err := New(def, DefaultOptions())
			if tt.atSolve {
				require.NoError(t, err)
				_, err = s.Solve()
			}

			var invalid *OverconstrainedOrInvalidSupportError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestTwoFlagSupportRestrainsZWithY(t *testing.T) {
	def := bar(-50)
	def.Supports["2"] = []int{0, 1}

	res := solve(t, def, DefaultOptions())
	assert.Equal(t, []int{0, 1, 2, 4, 5}, res.Restrained)
}

func TestTopologyErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Definition)
	}{
		{"unknown end node", func(d *model.Definition) { d.Elements[0].To = "3" }},
		{"unknown start node", func(d *model.Definition) { d.Elements[0].From = "x" }},
		{"duplicate node", func(d *model.Definition) { d.Nodes[1].ID = "1" }},
		{"duplicate element", func(d *model.Definition) { d.Elements = append(d.Elements, d.Elements[0]) }},
		{"missing area", func(d *model.Definition) { delete(d.CrossArea, "1") }},
		{"missing elasticity", func(d *model.Definition) { delete(d.Elasticity, "1") }},
		{"unknown material", func(d *model.Definition) {
			delete(d.Elasticity, "1")
			d.Materials = map[string]string{"1": "unobtainium"}
		}},
		{"force on unknown node", func(d *model.Definition) { d.Forces["7"] = []float64{1, 0, 0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := bar(-50)
			tt.mutate(def)

			s, err := New(def, DefaultOptions())
			assert.Nil(t, s)

			var topo *InconsistentTopologyError
			assert.True(t, errors.As(err, &topo), "got %v", err)
		})
	}
}

func TestDegenerateElementFailsSolve(t *testing.T) {
	def := bar(-50)
	def.Nodes[1].X = 0

	s, err := New(def, DefaultOptions())
	require.NoError(t, err)
	res, err := s.Solve()
	assert.Nil(t, res)

	var degenerate *DegenerateElementError
	require.True(t, errors.As(err, &degenerate), "got %v", err)
	assert.Equal(t, "1", degenerate.Element)
}

func TestMaterialPreset(t *testing.T) {
	def := bar(-50)
	delete(def.Elasticity, "1")
	def.Materials = map[string]string{"1": "Steel"}

	s, err := New(def, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 200000.0, s.Elements()[0].E)
}

func TestSolveIsDeterministic(t *testing.T) {
	s, err := New(tripod(), DefaultOptions())
	require.NoError(t, err)

	first, err := s.Solve()
	require.NoError(t, err)
	second, err := s.Solve()
	require.NoError(t, err)

	assert.Equal(t, first.Displacements, second.Displacements)
	assert.Equal(t, first.Reactions, second.Reactions)
	assert.Equal(t, first.Members, second.Members)
}

func TestParallelBuildMatchesSerial(t *testing.T) {
	serial := solve(t, tripod(), DefaultOptions())

	opts := DefaultOptions()
	opts.Workers = 4
	parallel := solve(t, tripod(), opts)

	assert.Equal(t, serial.Displacements, parallel.Displacements)
	assert.Equal(t, serial.ExactReactions, parallel.ExactReactions)
	assert.Equal(t, serial.Members, parallel.Members)
	assert.Equal(t, serial.Stiffness.RawSymmetric().Data, parallel.Stiffness.RawSymmetric().Data)
}

func TestParallelBuildReportsFirstDegenerateElement(t *testing.T) {
	def := tripod()
	// BD and DC collapse onto D
	def.Nodes[1] = model.NodeDef{ID: "B", X: 1, Y: 1, Z: 3}
	def.Nodes[2] = model.NodeDef{ID: "C", X: 1, Y: 1, Z: 3}

	for _, workers := range []int{1, 2, 8} {
		opts := DefaultOptions()
		opts.Workers = workers

		s, err := New(def, opts)
		require.NoError(t, err)
		res, err := s.Solve()
		assert.Nil(t, res)

		var degenerate *DegenerateElementError
		require.True(t, errors.As(err, &degenerate), "workers=%d: got %v", workers, err)
		assert.Equal(t, "BD", degenerate.Element, "workers=%d", workers)
	}
}

func TestRoundAllHalfToEven(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		decimals int
		want     []float64
	}{
		{"integers", []float64{0.5, 1.5, 2.5, -2.5, 49.6}, 0, []float64{0, 2, 2, -2, 50}},
		{"tenths", []float64{0.25, 0.75, -0.125}, 1, []float64{0.2, 0.8, -0.1}},
		{"unrounded", []float64{1.0 / 3}, NoRounding, []float64{1.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundAll(append([]float64(nil), tt.in...), tt.decimals)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestRounding(t *testing.T) {
	// EA/L = 3, so a unit load gives an end displacement of 1/3
	def := bar(-1)
	def.Elasticity["1"] = 30

	rounded := solve(t, def, DefaultOptions())
	assert.Equal(t, [6]float64{0, 0, 0, -0.33333, 0, 0}, rounded.Members[0].LocalDisplacement)
	assert.InDelta(t, 0.99999, rounded.Members[0].Force, 1e-12)
	assert.InDelta(t, 1, rounded.Reactions[0], 0)

	exact := solve(t, def, exactOptions())
	assert.InDelta(t, 1, exact.Members[0].Force, 1e-12)
	assert.InDelta(t, 1, exact.ExactReactions[0], 1e-12)
}

func TestSolveLoadsLengthMismatch(t *testing.T) {
	s, err := New(bar(-50), DefaultOptions())
	require.NoError(t, err)

	_, err = s.SolveLoads(make([][3]float64, 1))
	assert.Error(t, err)
}

func TestStiffnessMatchesSolve(t *testing.T) {
	s, err := New(tripod(), DefaultOptions())
	require.NoError(t, err)

	k, err := s.Stiffness()
	require.NoError(t, err)
	res, err := s.Solve()
	require.NoError(t, err)

	assert.Equal(t, 12, k.SymmetricDim())
	assert.Equal(t, k.RawSymmetric().Data, res.Stiffness.RawSymmetric().Data)
}
