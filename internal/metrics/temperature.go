package metrics

import (
	"math"

	"github.com/chili-epfl/states-of-matter/internal/engine"
)

// MeanTemperature averages the measured temperature over the run.
type MeanTemperature struct {
	name    string
	sum     float64
	samples int
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (mt *MeanTemperature) Name() string {
	return mt.name
}

func (mt *MeanTemperature) Observe(m *engine.SimulationModel, t float64) {
	mt.sum += m.Temperature()
	mt.samples++
}

func (mt *MeanTemperature) Value() float64 {
	if mt.samples == 0 {
		return 0
	}
	return mt.sum / float64(mt.samples)
}

func (mt *MeanTemperature) Reset() {
	mt.sum = 0
	mt.samples = 0
}

// SetPointTracking reports the worst absolute deviation of the measured
// temperature from the set point.
type SetPointTracking struct {
	name     string
	maxError float64
}

func NewSetPointTracking() *SetPointTracking {
	return &SetPointTracking{name: "set_point_tracking"}
}

func (st *SetPointTracking) Name() string {
	return st.name
}

func (st *SetPointTracking) Observe(m *engine.SimulationModel, t float64) {
	err := math.Abs(m.Temperature() - m.TemperatureSetPoint())
	st.maxError = math.Max(st.maxError, err)
}

func (st *SetPointTracking) Value() float64 {
	return st.maxError
}

func (st *SetPointTracking) Reset() {
	st.maxError = 0
}
