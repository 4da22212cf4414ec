package model

import (
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/nscp"
)

// Definition is the configuration bundle describing a truss.
// Nodes and elements are ordered: the position of a node in Nodes fixes
// its degrees of freedom, so the order must not change between solves.
type Definition struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Nodes    []NodeDef    `json:"nodes" yaml:"nodes"`
	Elements []ElementDef `json:"elements" yaml:"elements"`

	// Restraint flags per node, 0 = free, 1 = fixed.
	// [fx, fy, fz], or [fx, fy] where fy also restrains z.
	Supports map[string][]int `json:"supports" yaml:"supports"`

	// Applied nodal forces [Fx, Fy, Fz]. Unlisted nodes carry no load.
	Forces map[string][]float64 `json:"forces,omitempty" yaml:"forces,omitempty"`

	// Per-element modulus of elasticity and cross-sectional area
	Elasticity map[string]float64 `json:"elasticity,omitempty" yaml:"elasticity,omitempty"`
	CrossArea  map[string]float64 `json:"cross_area" yaml:"cross_area"`

	// Optional material preset per element, used when Elasticity has no entry
	Materials map[string]string `json:"materials,omitempty" yaml:"materials,omitempty"`

	// Optional unfactored load cases keyed by load type (D, L, Lr, W, E, R)
	LoadCases map[string]map[string][]float64 `json:"load_cases,omitempty" yaml:"load_cases,omitempty"`
}

// NodeDef is a node identifier with its coordinates
type NodeDef struct {
	ID string  `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
	Z  float64 `json:"z" yaml:"z"`
}

// ElementDef connects two nodes
type ElementDef struct {
	ID   string `json:"id" yaml:"id"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Validate checks the definition is complete enough to build a structure.
// Geometry and topology consistency are checked when the structure is built.
func (d *Definition) Validate() error {
	if len(d.Nodes) < 2 {
		return &ValidationError{"truss must have at least 2 nodes"}
	}
	if len(d.Elements) == 0 {
		return &ValidationError{"truss must have at least one element"}
	}
	for node, f := range d.Forces {
		if len(f) > 3 {
			return &ValidationError{msg: fmt.Sprintf("force at node %q has %d components, want at most 3", node, len(f))}
		}
	}
	for name, loads := range d.LoadCases {
		if !nscp.IsLoadType(name) {
			return &ValidationError{msg: fmt.Sprintf("unknown load case %q (want one of D, L, Lr, W, E, R)", name)}
		}
		for node, f := range loads {
			if len(f) > 3 {
				return &ValidationError{msg: fmt.Sprintf("load case %s: force at node %q has %d components, want at most 3", name, node, len(f))}
			}
		}
	}
	return nil
}

// ForceVector pads a force entry to three components
func ForceVector(f []float64) [3]float64 {
	var v [3]float64
	copy(v[:], f)
	return v
}

// ValidationError represents a definition validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
