package engine

import "fmt"

// Substance selects the simulated particle species, which fixes the
// molecule topology, masses and display attributes.
type Substance int

const (
	SubstanceNeon Substance = iota
	SubstanceArgon
	SubstanceAdjustableAtom
	SubstanceOxygen
	SubstanceWater
)

// Substances lists every selectable substance in display order.
var Substances = []Substance{
	SubstanceNeon,
	SubstanceArgon,
	SubstanceAdjustableAtom,
	SubstanceOxygen,
	SubstanceWater,
}

func (s Substance) String() string {
	return substanceCatalog[s].name
}

// SubstanceFromName resolves a substance by its catalog name.
func SubstanceFromName(name string) (Substance, error) {
	for _, s := range Substances {
		if substanceCatalog[s].name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSubstance, name)
}

type substanceInfo struct {
	name             string
	atomsPerMolecule int

	// Zero means "derive from the molecule structure".
	moleculeMass      float64
	rotationalInertia float64

	defaultMoleculeCount int
	interactionStrength  float64

	// Per atom within a molecule.
	atomRadii []float64
	atomKinds []string
}

var substanceCatalog = map[Substance]substanceInfo{
	SubstanceNeon: {
		name:                 "neon",
		atomsPerMolecule:     1,
		moleculeMass:         1.0,
		defaultMoleculeCount: 64,
		interactionStrength:  1.0,
		atomRadii:            []float64{0.5},
		atomKinds:            []string{"neon"},
	},
	SubstanceArgon: {
		name:                 "argon",
		atomsPerMolecule:     1,
		moleculeMass:         1.98,
		defaultMoleculeCount: 64,
		interactionStrength:  1.0,
		atomRadii:            []float64{0.56},
		atomKinds:            []string{"argon"},
	},
	SubstanceAdjustableAtom: {
		name:                 "adjustable",
		atomsPerMolecule:     1,
		moleculeMass:         1.0,
		defaultMoleculeCount: 64,
		interactionStrength:  1.0,
		atomRadii:            []float64{0.5},
		atomKinds:            []string{"adjustable"},
	},
	SubstanceOxygen: {
		name:                 "oxygen",
		atomsPerMolecule:     2,
		defaultMoleculeCount: 50,
		interactionStrength:  1.0,
		atomRadii:            []float64{0.45, 0.45},
		atomKinds:            []string{"oxygen", "oxygen"},
	},
	SubstanceWater: {
		name:                 "water",
		atomsPerMolecule:     3,
		defaultMoleculeCount: 50,
		interactionStrength:  1.0,
		atomRadii:            []float64{0.5, 0.3, 0.3},
		atomKinds:            []string{"oxygen", "hydrogen", "hydrogen"},
	},
}

// Particle is a read-only per-atom snapshot for presentation layers.
type Particle struct {
	X, Y   float64
	Radius float64
	Kind   string
}
