package engine

import (
	"math"
	"math/rand"
)

// ThermostatPolicy selects how measured temperature is driven toward the
// set point after each integration step.
type ThermostatPolicy int

const (
	// ThermostatAdaptive picks isokinetic while the set point or container
	// is changing and Andersen otherwise. This is the default.
	ThermostatAdaptive ThermostatPolicy = iota
	ThermostatIsokinetic
	ThermostatAndersen
	// ThermostatNone leaves velocities untouched (useful for conservation
	// checks).
	ThermostatNone
)

// isokineticThermostat rescales all velocities and rotation rates so the
// instantaneous temperature matches the target exactly.
type isokineticThermostat struct{}

func (isokineticThermostat) adjust(ds *MoleculeDataSet, target float64) {
	n := ds.NumberOfMolecules()
	if n == 0 {
		return
	}
	m := ds.MoleculeMass
	inertia := ds.MoleculeRotationalInertia
	ke := 0.0
	for i := 0; i < n; i++ {
		vx := ds.Velocities[i*2]
		vy := ds.Velocities[i*2+1]
		ke += 0.5 * m * (vx*vx + vy*vy)
		if inertia > 0 {
			ke += 0.5 * inertia * ds.RotationRates[i] * ds.RotationRates[i]
		}
	}
	current := ke / float64(n) / degreesOfFreedomFactor
	if current <= 0 {
		return
	}
	scale := math.Sqrt(target / current)
	for i := 0; i < n; i++ {
		ds.Velocities[i*2] *= scale
		ds.Velocities[i*2+1] *= scale
		if inertia > 0 {
			ds.RotationRates[i] *= scale
		}
	}
}

// andersenThermostat nudges each molecule's velocity toward a thermal
// Gaussian draw at the target temperature. Gentler than the isokinetic
// rescale, it avoids the artifacts the rescale causes for cold crystals
// sitting under gravity.
type andersenThermostat struct {
	rng   *rand.Rand
	gamma float64
}

func newAndersenThermostat(rng *rand.Rand) *andersenThermostat {
	return &andersenThermostat{rng: rng, gamma: 0.99}
}

func (a *andersenThermostat) adjust(ds *MoleculeDataSet, target float64) {
	m := ds.MoleculeMass
	inertia := ds.MoleculeRotationalInertia
	velScale := math.Sqrt(target / m)
	mix := math.Sqrt(1 - a.gamma*a.gamma)
	var rateScale float64
	if inertia > 0 {
		rateScale = math.Sqrt(target / inertia)
	}
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		ds.Velocities[i*2] = ds.Velocities[i*2]*a.gamma + a.rng.NormFloat64()*velScale*mix
		ds.Velocities[i*2+1] = ds.Velocities[i*2+1]*a.gamma + a.rng.NormFloat64()*velScale*mix
		if inertia > 0 {
			ds.RotationRates[i] = ds.RotationRates[i]*a.gamma + a.rng.NormFloat64()*rateScale*mix
		}
	}
}
