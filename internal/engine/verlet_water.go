package engine

import "math"

// Water electrostatics. The charge model is deliberately non-physical:
// its constants were tuned for a visually plausible ice lattice, not
// derived from first principles, and must be treated as fixed empirical
// values.
//
// Each molecule carries three charges (O, H, H) but one hydrogen is
// excluded from the electrostatic sum; the remaining O-H dipole, with
// different magnitudes on even- and odd-indexed molecules, biases cold
// water toward a crystalline arrangement.
const (
	waterFullyFrozenTemperature = 0.22
	waterFullyMeltedTemperature = 0.30

	// Multiplier on the LJ r^-12 term at and below the fully frozen set
	// point; enlarges the lattice so ice is visibly less dense.
	maxRepulsiveScalingFactor = 3.0

	// Charge strengthening at and below the fully frozen set point.
	frozenChargeBoost = 1.5

	// Only atoms 0 (oxygen) and 1 (first hydrogen) participate in the
	// electrostatic sum.
	electrostaticAtomCount = 2
)

var (
	evenMoleculeCharges = [3]float64{-1.96, 0.98, 0.98}
	oddMoleculeCharges  = [3]float64{-0.98, 0.49, 0.49}
)

// WaterVerlet integrates rigid three-atom water molecules: Lennard-Jones
// between molecule centers plus Coulomb-like forces between the included
// atom charges of distinct molecules, with charge magnitudes and the
// repulsive scaling interpolated against the temperature set point.
type WaterVerlet struct {
	verletBase
}

func NewWaterVerlet(m *SimulationModel) *WaterVerlet {
	if m.dataSet.AtomsPerMolecule != 3 {
		panic("engine: water integrator requires 3 atoms per molecule")
	}
	return &WaterVerlet{verletBase{
		model:     m,
		ds:        m.dataSet,
		updater:   m.positionUpdater,
		wallInset: 0.9,
	}}
}

func (v *WaterVerlet) Step(dt float64) {
	meltFactor := v.meltFactor()

	v.advancePositions(dt)
	v.beginForceUpdate()
	v.accumulateLennardJonesForces(maxRepulsiveScalingFactor - (maxRepulsiveScalingFactor-1)*meltFactor)
	v.accumulateElectrostaticForces(meltFactor)
	v.completeVelocityUpdate(dt, maxRotationRate)
	v.syncAtomPositions()
	v.updatePressure(dt)
}

// meltFactor maps the temperature set point to [0,1]: 0 at or below the
// fully frozen threshold, 1 at or above fully melted, linear in between.
func (v *WaterVerlet) meltFactor() float64 {
	t := v.model.temperatureSetPoint
	if t <= waterFullyFrozenTemperature {
		return 0
	}
	if t >= waterFullyMeltedTemperature {
		return 1
	}
	return (t - waterFullyFrozenTemperature) / (waterFullyMeltedTemperature - waterFullyFrozenTemperature)
}

// accumulateElectrostaticForces adds Coulomb-like forces between the
// included atom pairs of distinct molecules whose centers lie inside the
// interaction cutoff. Forces applied at atom offsets also contribute
// torque about each molecule's center of mass.
func (v *WaterVerlet) accumulateElectrostaticForces(meltFactor float64) {
	ds := v.ds
	chargeScale := frozenChargeBoost - (frozenChargeBoost-1)*meltFactor
	n := ds.NumberOfMolecules()

	for i := 0; i < n; i++ {
		if !ds.InsideContainer[i] {
			continue
		}
		xi := ds.CenterOfMassPositions[i*2]
		yi := ds.CenterOfMassPositions[i*2+1]
		chargesI := moleculeCharges(i)
		for j := i + 1; j < n; j++ {
			if !ds.InsideContainer[j] {
				continue
			}
			dx := xi - ds.CenterOfMassPositions[j*2]
			dy := yi - ds.CenterOfMassPositions[j*2+1]
			if dx*dx+dy*dy >= interactionCutoffDistanceSqd {
				continue
			}
			chargesJ := moleculeCharges(j)

			for a := 0; a < electrostaticAtomCount; a++ {
				ax := ds.AtomPositions[(i*3+a)*2]
				ay := ds.AtomPositions[(i*3+a)*2+1]
				qa := chargesI[a] * chargeScale
				for b := 0; b < electrostaticAtomCount; b++ {
					bx := ds.AtomPositions[(j*3+b)*2]
					by := ds.AtomPositions[(j*3+b)*2+1]
					qb := chargesJ[b] * chargeScale

					adx := ax - bx
					ady := ay - by
					d2 := adx*adx + ady*ady
					if d2 < minDistanceSqd {
						d2 = minDistanceSqd
					}
					rInv := 1 / math.Sqrt(d2)
					forceScalar := qa * qb / d2 * rInv
					fx := adx * forceScalar
					fy := ady * forceScalar

					ds.NextForces[i*2] += fx
					ds.NextForces[i*2+1] += fy
					ds.NextForces[j*2] -= fx
					ds.NextForces[j*2+1] -= fy

					ds.NextTorques[i] += (ax-xi)*fy - (ay-yi)*fx
					ds.NextTorques[j] -= (bx-ds.CenterOfMassPositions[j*2])*fy - (by-ds.CenterOfMassPositions[j*2+1])*fx
				}
			}
		}
	}
}

func moleculeCharges(i int) [3]float64 {
	if i%2 == 0 {
		return evenMoleculeCharges
	}
	return oddMoleculeCharges
}
