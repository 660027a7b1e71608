package sim

import (
	"context"
	"fmt"

	"github.com/chili-epfl/states-of-matter/internal/config"
	"github.com/chili-epfl/states-of-matter/internal/engine"
)

// Metric reduces the per-step observations of a run to a single scalar.
// The implementations live in the metrics package.
type Metric interface {
	Name() string
	Observe(m *engine.SimulationModel, t float64)
	Value() float64
	Reset()
}

type Runner struct {
	metrics   []Metric
	observers []Observer
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// BuildModel constructs a simulation model from a validated config:
// substance, phase, molecule count, physics overrides, thermostat and
// the heating and lid inputs.
func BuildModel(cfg *config.Config) (*engine.SimulationModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	substance, err := engine.SubstanceFromName(cfg.Substance)
	if err != nil {
		return nil, err
	}
	m := engine.NewSimulationModel(substance, cfg.Seed)

	if cfg.Molecules > 0 {
		m.SetNumberOfMolecules(cfg.Molecules)
	}
	if cfg.Physics.Gravity != 0 {
		if err := m.SetParam("gravity", cfg.Physics.Gravity); err != nil {
			return nil, err
		}
	}
	if cfg.Physics.InteractionStrength != 0 {
		if err := m.SetParam("interactionStrength", cfg.Physics.InteractionStrength); err != nil {
			return nil, err
		}
	}
	if cfg.Physics.ExplosionPressure != 0 {
		if err := m.SetParam("explosionPressure", cfg.Physics.ExplosionPressure); err != nil {
			return nil, err
		}
	}
	m.SetThermostatPolicy(thermostatFromName(cfg.Thermostat))

	if err := m.SetPhase(phaseFromName(cfg.Phase)); err != nil {
		return nil, err
	}
	if err := m.SetHeatCoolAmount(cfg.Heating.Amount); err != nil {
		return nil, err
	}
	if cfg.Heating.LidFraction > 0 {
		m.SetTargetContainerHeight(cfg.Heating.LidFraction * m.ContainerHeight())
	}
	return m, nil
}

func phaseFromName(name string) engine.Phase {
	switch name {
	case "liquid":
		return engine.PhaseLiquid
	case "gas":
		return engine.PhaseGas
	default:
		return engine.PhaseSolid
	}
}

func thermostatFromName(name string) engine.ThermostatPolicy {
	switch name {
	case "isokinetic":
		return engine.ThermostatIsokinetic
	case "andersen":
		return engine.ThermostatAndersen
	case "none":
		return engine.ThermostatNone
	default:
		return engine.ThermostatAdaptive
	}
}

// Run builds a model from cfg and steps it for the configured duration,
// recording one sample per step. Cancelling the context returns the
// partial result together with the context error.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	m, err := BuildModel(cfg)
	if err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps),
		Metrics: make(map[string]float64),
	}
	for _, metric := range r.metrics {
		metric.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, m)
			return result, ctx.Err()
		default:
		}

		m.Step(cfg.Dt)
		t := m.Elapsed()

		for _, metric := range r.metrics {
			metric.Observe(m, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(m, t)
		}

		result.Samples = append(result.Samples, Sample{
			Time:        t,
			Temperature: m.Temperature(),
			SetPoint:    m.TemperatureSetPoint(),
			Pressure:    m.Pressure(),
			Height:      m.ContainerHeight(),
			Exploded:    m.IsExploded(),
		})
		result.Steps++
	}

	r.finish(result, m)
	return result, nil
}

func (r *Runner) finish(result *Result, m *engine.SimulationModel) {
	result.Particles = m.Particles()
	for _, metric := range r.metrics {
		result.Metrics[metric.Name()] = metric.Value()
	}
}

// RunWithCallback steps a pre-built model, invoking callback after every
// step. Returning false from the callback stops the run early.
func RunWithCallback(ctx context.Context, m *engine.SimulationModel, dt, duration float64, callback func(*engine.SimulationModel, float64) bool) error {
	if dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", dt)
	}
	steps := int(duration / dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m.Step(dt)
		if !callback(m, m.Elapsed()) {
			return nil
		}
	}
	return nil
}
