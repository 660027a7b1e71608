package engine

import (
	"fmt"
	"math/rand"
)

// Full heat or cool moves the set point by this much per unit of
// simulated time.
const heatCoolRate = 0.5

// SimulationModel owns the active data set, integrator and phase-state
// changer for the selected substance, the container geometry, and the
// temperature set point. It is the only surface presentation layers talk
// to: intents come in through the setters, state goes out through the
// read-only accessors, and exactly one Step call advances everything.
type SimulationModel struct {
	substance       Substance
	dataSet         *MoleculeDataSet
	integrator      VerletIntegrator
	phaseChanger    PhaseStateChanger
	positionUpdater AtomPositionUpdater
	container       *Container

	temperatureSetPoint       float64
	heatCoolAmount            float64
	gravitationalAcceleration float64
	interactionStrength       float64
	explosionPressure         float64

	phase            Phase
	thermostatPolicy ThermostatPolicy
	isokinetic       isokineticThermostat
	andersen         *andersenThermostat

	seed int64
	rng  *rand.Rand

	setPointChanged bool
	elapsed         float64
	steps           int
}

// NewSimulationModel creates a model seeded with the given substance in
// its solid phase. The seed drives every random draw the model makes
// (phase placement, thermostats, molecule injection), so equal seeds give
// reproducible runs.
func NewSimulationModel(s Substance, seed int64) *SimulationModel {
	m := &SimulationModel{
		container:                 newContainer(),
		gravitationalAcceleration: defaultGravitationalAcceleration,
		explosionPressure:         defaultExplosionPressure,
		temperatureSetPoint:       SolidTemperature,
		seed:                      seed,
		rng:                       rand.New(rand.NewSource(seed)),
	}
	m.andersen = newAndersenThermostat(rand.New(rand.NewSource(seed + 1)))
	if err := m.SetSubstance(s); err != nil {
		panic(err)
	}
	return m
}

// SetSubstance tears down the data set, integrator and phase changer as a
// unit and rebuilds all three for the new topology, then seeds the solid
// phase. No Step call can ever observe a half-replaced data set.
func (m *SimulationModel) SetSubstance(s Substance) error {
	info, ok := substanceCatalog[s]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSubstance, int(s))
	}

	ds := NewMoleculeDataSet(info.atomsPerMolecule, info.defaultMoleculeCount)
	switch info.atomsPerMolecule {
	case 1:
		ds.MoleculeMass = info.moleculeMass
	case 2:
		ds.MoleculeMass = diatomicStructure.mass
		ds.MoleculeRotationalInertia = diatomicStructure.rotationalInertia
	case 3:
		ds.MoleculeMass = waterStructure.mass
		ds.MoleculeRotationalInertia = waterStructure.rotationalInertia
	}
	for i := 0; i < info.defaultMoleculeCount; i++ {
		ds.AddMolecule(0, 0, 0, 0, 0, 0, true)
	}

	// Swap everything in together; the old triple is garbage from here on.
	m.substance = s
	m.dataSet = ds
	m.interactionStrength = info.interactionStrength
	switch info.atomsPerMolecule {
	case 1:
		m.positionUpdater = NewMonatomicAtomPositionUpdater(m.container)
		m.integrator = NewMonatomicVerlet(m)
		m.phaseChanger = NewMonatomicPhaseStateChanger(m, m.seed)
	case 2:
		m.positionUpdater = NewDiatomicAtomPositionUpdater()
		m.integrator = NewDiatomicVerlet(m)
		m.phaseChanger = NewDiatomicPhaseStateChanger(m, m.seed)
	case 3:
		m.positionUpdater = NewWaterAtomPositionUpdater()
		m.integrator = NewWaterVerlet(m)
		m.phaseChanger = NewWaterPhaseStateChanger(m, m.seed)
	}

	return m.SetPhase(PhaseSolid)
}

// Step advances the simulation by dt: the set point drifts under the
// current heat/cool amount, the lid moves toward its target, the active
// integrator runs one Verlet step, and a thermostat pulls the measured
// temperature toward the set point. dt must be positive.
func (m *SimulationModel) Step(dt float64) {
	if dt <= 0 {
		panic("engine: non-positive time step")
	}

	if m.heatCoolAmount != 0 {
		t := clamp(m.temperatureSetPoint+m.heatCoolAmount*heatCoolRate*dt, MinTemperature, MaxTemperature)
		if t != m.temperatureSetPoint {
			m.temperatureSetPoint = t
			m.setPointChanged = true
			m.phase = PhaseCustom
		}
	}

	m.container.moveLid(dt)
	m.integrator.Step(dt)
	m.runThermostat()

	m.setPointChanged = false
	m.elapsed += dt
	m.steps++
}

func (m *SimulationModel) runThermostat() {
	if m.container.Exploded {
		return
	}
	policy := m.thermostatPolicy
	if policy == ThermostatAdaptive {
		if m.heatCoolAmount != 0 || m.setPointChanged || m.container.LidVelocity != 0 {
			policy = ThermostatIsokinetic
		} else if m.temperatureSetPoint < LiquidTemperature {
			policy = ThermostatAndersen
		} else {
			policy = ThermostatIsokinetic
		}
	}
	switch policy {
	case ThermostatIsokinetic:
		m.isokinetic.adjust(m.dataSet, m.temperatureSetPoint)
	case ThermostatAndersen:
		m.andersen.adjust(m.dataSet, m.temperatureSetPoint)
	}
}

// SetPhase re-seeds the configuration into the target phase and, for
// liquid, runs a short burst of relaxation steps to un-stiffen the
// artificially regular placement.
func (m *SimulationModel) SetPhase(p Phase) error {
	if err := m.phaseChanger.SetPhase(p); err != nil {
		return err
	}
	m.phase = p
	m.integrator.ResetPressure()
	if p == PhaseLiquid {
		for i := 0; i < liquidRelaxationSteps; i++ {
			m.integrator.Step(DefaultTimeStep)
			m.isokinetic.adjust(m.dataSet, m.temperatureSetPoint)
		}
	}
	return nil
}

// SetTemperatureSetPoint sets the thermostat target directly, moving the
// phase label to custom.
func (m *SimulationModel) SetTemperatureSetPoint(t float64) error {
	if t < MinTemperature || t > MaxTemperature {
		return fmt.Errorf("%w: temperature set point %f", ErrParameterBounds, t)
	}
	m.temperatureSetPoint = t
	m.setPointChanged = true
	m.phase = PhaseCustom
	return nil
}

// SetHeatCoolAmount sets the continuous heat (positive) or cool
// (negative) input, in [-1, 1].
func (m *SimulationModel) SetHeatCoolAmount(v float64) error {
	if v < -1 || v > 1 {
		return fmt.Errorf("%w: heat/cool amount %f", ErrParameterBounds, v)
	}
	m.heatCoolAmount = v
	return nil
}

// SetTargetContainerHeight drives the lid. The target clamps to
// [0, initial height]; the request is ignored while the container is
// exploded, since there is no lid to move.
func (m *SimulationModel) SetTargetContainerHeight(h float64) {
	if m.container.Exploded {
		return
	}
	m.container.TargetHeight = clamp(h, 0, m.container.InitialHeight)
}

// SetNumberOfMolecules grows or shrinks the population toward n. New
// molecules are injected just under the lid with a small downward thermal
// velocity; removal trims from the end of the arrays.
func (m *SimulationModel) SetNumberOfMolecules(n int) {
	if n < 1 {
		n = 1
	}
	ds := m.dataSet
	velScale := m.temperatureSetPoint
	for ds.NumberOfMolecules() > n {
		ds.RemoveMolecule(ds.NumberOfMolecules() - 1)
	}
	for ds.NumberOfMolecules() < n {
		x := m.container.Width * (0.3 + 0.4*m.rng.Float64())
		y := m.container.Height - minWallInset - m.rng.Float64()
		ds.AddMolecule(x, y, m.rng.NormFloat64()*velScale, -velScale, 0, 0, true)
	}
	m.positionUpdater.UpdateAtomPositions(ds)
	m.phase = PhaseCustom
}

// ReturnLid re-seats an exploded lid: molecules that escaped are removed,
// the container geometry is restored and the exploded flag clears. It is
// a no-op on an intact container.
func (m *SimulationModel) ReturnLid() {
	if !m.container.Exploded {
		return
	}
	ds := m.dataSet
	for i := ds.NumberOfMolecules() - 1; i >= 0; i-- {
		if !ds.InsideContainer[i] || ds.CenterOfMassPositions[i*2+1] > m.container.InitialHeight {
			ds.RemoveMolecule(i)
		}
	}
	m.container.reset()
	m.integrator.ResetPressure()
	m.positionUpdater.UpdateAtomPositions(ds)
}

// Reset restores the initial container geometry, clears the exploded
// state and heat/cool input, and re-seeds the current substance in its
// solid phase.
func (m *SimulationModel) Reset() {
	m.container.reset()
	m.heatCoolAmount = 0
	m.temperatureSetPoint = SolidTemperature
	m.elapsed = 0
	m.steps = 0
	if err := m.SetSubstance(m.substance); err != nil {
		panic(err)
	}
}

// explode is called by the integrator when the smoothed pressure crosses
// the explosion threshold. The transition is one-way until Reset or
// ReturnLid.
func (m *SimulationModel) explode() {
	m.container.Exploded = true
}

// SetThermostatPolicy overrides the adaptive thermostat selection.
func (m *SimulationModel) SetThermostatPolicy(p ThermostatPolicy) {
	m.thermostatPolicy = p
}

// GetParams exposes the tunable physics parameters.
func (m *SimulationModel) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":             m.gravitationalAcceleration,
		"interactionStrength": m.interactionStrength,
		"explosionPressure":   m.explosionPressure,
	}
}

// SetParam adjusts a tunable physics parameter by name.
func (m *SimulationModel) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		if v < 0 {
			return fmt.Errorf("%w: gravity %f", ErrParameterBounds, v)
		}
		m.gravitationalAcceleration = v
	case "interactionStrength":
		if v <= 0 {
			return fmt.Errorf("%w: interaction strength %f", ErrParameterBounds, v)
		}
		m.interactionStrength = v
	case "explosionPressure":
		if v <= 0 {
			return fmt.Errorf("%w: explosion pressure %f", ErrParameterBounds, v)
		}
		m.explosionPressure = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return nil
}

// setPhaseTemperature sets the set point while seeding a phase, without
// moving the phase label to custom.
func (m *SimulationModel) setPhaseTemperature(t float64) {
	m.temperatureSetPoint = t
	m.setPointChanged = true
}

// Read-only accessors.

func (m *SimulationModel) Substance() Substance           { return m.substance }
func (m *SimulationModel) Phase() Phase                   { return m.phase }
func (m *SimulationModel) Temperature() float64           { return m.integrator.Temperature() }
func (m *SimulationModel) TemperatureSetPoint() float64   { return m.temperatureSetPoint }
func (m *SimulationModel) Pressure() float64              { return m.integrator.Pressure() }
func (m *SimulationModel) ContainerWidth() float64        { return m.container.Width }
func (m *SimulationModel) ContainerHeight() float64       { return m.container.Height }
func (m *SimulationModel) TargetContainerHeight() float64 { return m.container.TargetHeight }
func (m *SimulationModel) IsExploded() bool               { return m.container.Exploded }
func (m *SimulationModel) NumberOfMolecules() int         { return m.dataSet.NumberOfMolecules() }
func (m *SimulationModel) Elapsed() float64               { return m.elapsed }
func (m *SimulationModel) Steps() int                     { return m.steps }

// Particles returns a per-atom snapshot for rendering. The slice is
// freshly allocated; callers may keep it across steps.
func (m *SimulationModel) Particles() []Particle {
	info := substanceCatalog[m.substance]
	ds := m.dataSet
	out := make([]Particle, 0, ds.NumberOfAtoms())
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		for a := 0; a < ds.AtomsPerMolecule; a++ {
			out = append(out, Particle{
				X:      ds.AtomPositions[(i*ds.AtomsPerMolecule+a)*2],
				Y:      ds.AtomPositions[(i*ds.AtomsPerMolecule+a)*2+1],
				Radius: info.atomRadii[a],
				Kind:   info.atomKinds[a],
			})
		}
	}
	return out
}

// TotalMomentum sums linear momentum over all molecules.
func (m *SimulationModel) TotalMomentum() (px, py float64) {
	ds := m.dataSet
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		px += ds.MoleculeMass * ds.Velocities[i*2]
		py += ds.MoleculeMass * ds.Velocities[i*2+1]
	}
	return
}

// KineticEnergy sums translational and rotational kinetic energy.
func (m *SimulationModel) KineticEnergy() float64 {
	ds := m.dataSet
	ke := 0.0
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		vx := ds.Velocities[i*2]
		vy := ds.Velocities[i*2+1]
		ke += 0.5 * ds.MoleculeMass * (vx*vx + vy*vy)
		if ds.MoleculeRotationalInertia > 0 {
			ke += 0.5 * ds.MoleculeRotationalInertia * ds.RotationRates[i] * ds.RotationRates[i]
		}
	}
	return ke
}
