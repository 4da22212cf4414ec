package nscp

// Load types accepted as load case names
const (
	Dead       = "D"
	Live       = "L"
	Roof       = "Lr"
	Wind       = "W"
	Earthquake = "E"
	Rain       = "R"
)

// LoadTypes lists the load case names in report order
var LoadTypes = []string{Dead, Live, Roof, Wind, Earthquake, Rain}

// IsLoadType reports whether name is a known load type
func IsLoadType(name string) bool {
	for _, t := range LoadTypes {
		if t == name {
			return true
		}
	}
	return false
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations covers gravity loads only
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the factor applied to a load type, 0 for unknown types
func (lc LoadCombination) Factor(loadType string) float64 {
	switch loadType {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// Combine returns the factored nodal forces sum(factor·case) over all
// load cases. Cases is keyed by load type, each case holding one force
// vector per node.
func (lc LoadCombination) Combine(cases map[string][][3]float64, nodes int) [][3]float64 {
	out := make([][3]float64, nodes)
	for _, t := range LoadTypes {
		f := lc.Factor(t)
		c, ok := cases[t]
		if !ok || f == 0 {
			continue
		}
		for i := range out {
			for a := 0; a < 3; a++ {
				out[i][a] += f * c[i][a]
			}
		}
	}
	return out
}

// FindCombination looks up a combination by ID
func FindCombination(id string, combinations []LoadCombination) (LoadCombination, bool) {
	for _, combo := range combinations {
		if combo.ID == id {
			return combo, true
		}
	}
	return LoadCombination{}, false
}
