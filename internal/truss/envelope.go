package truss

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/nscp"
)

// ErrNoLoadCases is returned when a combination is requested for a
// structure defined without load cases.
var ErrNoLoadCases = errors.New("structure has no load cases")

// MemberEnvelope is the governing axial force of one member over a set of
// load combinations.
type MemberEnvelope struct {
	ID string

	MaxCompression       float64 // largest positive force, 0 if never in compression
	CompressionGoverning string  // combination ID, empty if never in compression

	MaxTension       float64 // most negative force, 0 if never in tension
	TensionGoverning string  // combination ID, empty if never in tension
}

// Envelope holds per-combination results and the member envelope
type Envelope struct {
	Combinations []nscp.LoadCombination
	Results      []*Result
	Members      []MemberEnvelope
}

// SolveCombination analyzes the structure under one factored combination
// of its load cases.
func (s *Structure) SolveCombination(combo nscp.LoadCombination) (*Result, error) {
	if len(s.loadCases) == 0 {
		return nil, ErrNoLoadCases
	}
	res, err := s.SolveLoads(combo.Combine(s.loadCases, len(s.nodes)))
	if err != nil {
		return nil, fmt.Errorf("combination %s (%s): %w", combo.ID, combo.Description, err)
	}
	return res, nil
}

// SolveEnvelope solves every combination and tracks the governing
// compression and tension of each member.
func (s *Structure) SolveEnvelope(combinations []nscp.LoadCombination) (*Envelope, error) {
	env := &Envelope{
		Combinations: combinations,
		Members:      make([]MemberEnvelope, len(s.elements)),
	}
	for i, e := range s.elements {
		env.Members[i].ID = e.ID
	}

	for _, combo := range combinations {
		res, err := s.SolveCombination(combo)
		if err != nil {
			return nil, err
		}
		env.Results = append(env.Results, res)

		for i, m := range res.Members {
			me := &env.Members[i]
			if m.Force > me.MaxCompression {
				me.MaxCompression = m.Force
				me.CompressionGoverning = combo.ID
			}
			if m.Force < me.MaxTension {
				me.MaxTension = m.Force
				me.TensionGoverning = combo.ID
			}
		}
	}

	return env, nil
}
