package metrics

import (
	"math"

	"github.com/chili-epfl/states-of-matter/internal/engine"
)

// MeanKineticEnergy averages total kinetic energy over the run.
type MeanKineticEnergy struct {
	name    string
	sum     float64
	samples int
}

func NewMeanKineticEnergy() *MeanKineticEnergy {
	return &MeanKineticEnergy{name: "mean_kinetic_energy"}
}

func (e *MeanKineticEnergy) Name() string {
	return e.name
}

func (e *MeanKineticEnergy) Observe(m *engine.SimulationModel, t float64) {
	e.sum += m.KineticEnergy()
	e.samples++
}

func (e *MeanKineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *MeanKineticEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// MomentumDrift tracks the largest change in total momentum magnitude
// relative to the first observation. With gravity, walls and thermostats
// disabled the drift stays near machine precision; anything larger
// points at an integrator bug.
type MomentumDrift struct {
	name      string
	initial   float64
	maxDrift  float64
	samples   int
	hasOrigin bool
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (d *MomentumDrift) Name() string {
	return d.name
}

func (d *MomentumDrift) Observe(m *engine.SimulationModel, t float64) {
	px, py := m.TotalMomentum()
	mag := math.Hypot(px, py)
	d.samples++
	if !d.hasOrigin {
		d.initial = mag
		d.hasOrigin = true
		return
	}
	d.maxDrift = math.Max(d.maxDrift, math.Abs(mag-d.initial))
}

func (d *MomentumDrift) Value() float64 {
	return d.maxDrift
}

func (d *MomentumDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
	d.hasOrigin = false
}
