package truss

import (
	"fmt"
	"math"
)

// DegenerateElementError is returned when the two ends of an element
// coincide, so its length and direction cosines are undefined.
type DegenerateElementError struct {
	Element string
	Length  float64
}

func (e *DegenerateElementError) Error() string {
	return fmt.Sprintf("element %q is degenerate (length %g)", e.Element, e.Length)
}

// OverconstrainedOrInvalidSupportError is returned when the restrained
// DOF set is empty, covers every DOF, or references a DOF or node that
// does not exist.
type OverconstrainedOrInvalidSupportError struct {
	Node   string
	Reason string
}

func (e *OverconstrainedOrInvalidSupportError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("invalid support at node %q: %s", e.Node, e.Reason)
	}
	return "invalid supports: " + e.Reason
}

// SingularStiffnessMatrixError is returned when the reduced stiffness
// matrix cannot be solved: the structure is a mechanism or lacks supports.
type SingularStiffnessMatrixError struct {
	Condition float64
}

func (e *SingularStiffnessMatrixError) Error() string {
	if math.IsInf(e.Condition, 1) {
		return "stiffness matrix is singular: structure is unstable"
	}
	return fmt.Sprintf("stiffness matrix is ill-conditioned (cond = %.3g): structure is unstable", e.Condition)
}

// InconsistentTopologyError is returned when an element or load refers to
// something the definition does not contain.
type InconsistentTopologyError struct {
	Element string
	Node    string
	Reason  string
}

func (e *InconsistentTopologyError) Error() string {
	switch {
	case e.Element != "" && e.Node != "":
		return fmt.Sprintf("element %q, node %q: %s", e.Element, e.Node, e.Reason)
	case e.Element != "":
		return fmt.Sprintf("element %q: %s", e.Element, e.Reason)
	case e.Node != "":
		return fmt.Sprintf("node %q: %s", e.Node, e.Reason)
	}
	return e.Reason
}
