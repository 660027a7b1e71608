package metrics

import (
	"math"

	"github.com/chili-epfl/states-of-matter/internal/engine"
)

// PeakPressure tracks the highest smoothed pressure seen over the run.
type PeakPressure struct {
	name string
	max  float64
}

func NewPeakPressure() *PeakPressure {
	return &PeakPressure{name: "peak_pressure"}
}

func (p *PeakPressure) Name() string {
	return p.name
}

func (p *PeakPressure) Observe(m *engine.SimulationModel, t float64) {
	p.max = math.Max(p.max, m.Pressure())
}

func (p *PeakPressure) Value() float64 {
	return p.max
}

func (p *PeakPressure) Reset() {
	p.max = 0
}

// Containment is the fraction of observed samples with an intact
// container. 1.0 means the run never exploded.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(m *engine.SimulationModel, t float64) {
	c.samples++
	if m.IsExploded() {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
