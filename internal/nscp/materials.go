package nscp

import "strings"

// Moduli of elasticity (MPa) for common truss materials

const (
	// Structural steel (Section 420.2.2)
	Es = 200000.0

	// Aluminum alloy members
	Ea = 70000.0

	// Stainless steel members
	Ess = 193000.0

	// Structural timber, parallel to grain (average for visually graded lumber)
	Et = 10000.0
)

var presets = map[string]float64{
	"steel":     Es,
	"aluminum":  Ea,
	"aluminium": Ea,
	"stainless": Ess,
	"timber":    Et,
}

// Modulus returns the modulus of elasticity of a material preset.
// Names are case-insensitive.
func Modulus(name string) (float64, bool) {
	e, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}
