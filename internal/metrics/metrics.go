// Package metrics computes scalar summaries of a running simulation.
// Metrics observe the model after each step and reduce the history to a
// single value for reports and benchmarks.
package metrics

import "github.com/chili-epfl/states-of-matter/internal/engine"

type Metric interface {
	Name() string
	Observe(m *engine.SimulationModel, t float64)
	Value() float64
	Reset()
}
