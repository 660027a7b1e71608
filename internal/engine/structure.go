package engine

import "math"

// moleculeStructure describes the rigid geometry of a multi-atom molecule:
// per-atom offsets from the molecular center of mass, per-atom masses, and
// the scalar rotational inertia derived from the mass-weighted offsets.
type moleculeStructure struct {
	offsetsX          []float64
	offsetsY          []float64
	atomMasses        []float64
	mass              float64
	rotationalInertia float64
}

const (
	bondedParticleDistance = 0.9

	// H-O-H opening angle. Wider than the physical 104.5 degrees so the
	// hydrogens stay visually distinct at display sizes.
	waterBondAngle = 120.0 * math.Pi / 180.0

	waterOxygenMass   = 1.0
	waterHydrogenMass = 0.0625
)

var (
	diatomicStructure = newDiatomicStructure()
	waterStructure    = newWaterStructure()
)

func newDiatomicStructure() moleculeStructure {
	half := bondedParticleDistance / 2
	s := moleculeStructure{
		offsetsX:   []float64{-half, half},
		offsetsY:   []float64{0, 0},
		atomMasses: []float64{1, 1},
	}
	s.finish()
	return s
}

func newWaterStructure() moleculeStructure {
	// Oxygen at the origin, hydrogens at the bond distance, symmetric
	// about the x axis; then shift everything so the center of mass is the
	// rotation origin.
	halfAngle := waterBondAngle / 2
	s := moleculeStructure{
		offsetsX: []float64{
			0,
			bondedParticleDistance * math.Cos(halfAngle),
			bondedParticleDistance * math.Cos(halfAngle),
		},
		offsetsY: []float64{
			0,
			bondedParticleDistance * math.Sin(halfAngle),
			-bondedParticleDistance * math.Sin(halfAngle),
		},
		atomMasses: []float64{waterOxygenMass, waterHydrogenMass, waterHydrogenMass},
	}
	var cx, cy float64
	for i, m := range s.atomMasses {
		s.mass += m
		cx += m * s.offsetsX[i]
		cy += m * s.offsetsY[i]
	}
	cx /= s.mass
	cy /= s.mass
	for i := range s.atomMasses {
		s.offsetsX[i] -= cx
		s.offsetsY[i] -= cy
	}
	s.mass = 0
	s.finish()
	return s
}

func (s *moleculeStructure) finish() {
	s.mass = 0
	s.rotationalInertia = 0
	for i, m := range s.atomMasses {
		s.mass += m
		s.rotationalInertia += m * (s.offsetsX[i]*s.offsetsX[i] + s.offsetsY[i]*s.offsetsY[i])
	}
}
