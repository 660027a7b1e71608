package engine

// VerletIntegrator advances the simulation by one velocity-Verlet step:
// position update with wall handling, two-pass force/torque evaluation,
// velocity update from the averaged forces, and the aggregate temperature
// and pressure outputs.
type VerletIntegrator interface {
	Step(dt float64)
	Temperature() float64
	Pressure() float64
	ResetPressure()
}

// verletBase carries the machinery shared by the monatomic, diatomic and
// water variants. The variants differ only in their wall inset, their
// force accumulation (LJ-only vs LJ+electrostatics) and whether rotation
// is integrated.
type verletBase struct {
	model   *SimulationModel
	ds      *MoleculeDataSet
	updater AtomPositionUpdater

	wallInset float64

	temperature float64
	pressure    float64

	// Wall impulse accumulated during the current position pass.
	wallImpulse float64
}

func (b *verletBase) Temperature() float64 { return b.temperature }
func (b *verletBase) Pressure() float64    { return b.pressure }
func (b *verletBase) ResetPressure()       { b.pressure = 0 }

// advancePositions performs the first Verlet half: advance centers of mass
// (and rotation angles where the topology has inertia) using the current
// forces, then resolve wall crossings, accumulating the wall impulse that
// feeds the pressure gauge.
func (b *verletBase) advancePositions(dt float64) {
	ds := b.ds
	c := b.model.container
	m := ds.MoleculeMass
	inertia := ds.MoleculeRotationalInertia
	dt2 := dt * dt
	b.wallImpulse = 0

	minX := b.wallInset
	maxX := c.Width - b.wallInset
	minY := b.wallInset
	top := c.interiorTop() - b.wallInset

	for i := 0; i < ds.NumberOfMolecules(); i++ {
		x := ds.CenterOfMassPositions[i*2] + ds.Velocities[i*2]*dt + 0.5*ds.Forces[i*2]/m*dt2
		y := ds.CenterOfMassPositions[i*2+1] + ds.Velocities[i*2+1]*dt + 0.5*ds.Forces[i*2+1]/m*dt2
		if inertia > 0 {
			ds.RotationAngles[i] += ds.RotationRates[i]*dt + 0.5*ds.Torques[i]/inertia*dt2
		}

		if !ds.InsideContainer[i] {
			// Escaped through an exploded top: ballistic until it falls
			// back inside the container's interior box.
			if x >= minX && x <= maxX && y >= minY && y <= top {
				ds.InsideContainer[i] = true
			}
			ds.CenterOfMassPositions[i*2] = x
			ds.CenterOfMassPositions[i*2+1] = y
			continue
		}

		vx := ds.Velocities[i*2]
		vy := ds.Velocities[i*2+1]

		if x < minX {
			x = minX
			if vx < 0 {
				b.wallImpulse += 2 * m * -vx
				vx = -vx
			}
		} else if x > maxX {
			x = maxX
			if vx > 0 {
				b.wallImpulse += 2 * m * vx
				vx = -vx
			}
		}

		if y < minY {
			y = minY
			if vy < 0 {
				b.wallImpulse += 2 * m * -vy
				vy = -vy
			}
		} else if y > top {
			if c.Exploded {
				ds.InsideContainer[i] = false
			} else {
				y = top
				if vy > 0 {
					b.wallImpulse += 2 * m * vy
					vy = -vy
				}
				// A moving lid kicks the particle with a fraction of its
				// own velocity.
				if c.LidVelocity != 0 {
					vy += lidMomentumTransferFactor * c.LidVelocity
				}
			}
		}

		ds.CenterOfMassPositions[i*2] = x
		ds.CenterOfMassPositions[i*2+1] = y
		ds.Velocities[i*2] = vx
		ds.Velocities[i*2+1] = vy
	}
}

// beginForceUpdate zero-initializes the next-force buffers to gravity.
// Below a low set point gravity is boosted to keep cold crystals from
// drifting off the floor under the thermostat.
func (b *verletBase) beginForceUpdate() {
	ds := b.ds
	g := b.model.gravitationalAcceleration
	setPoint := b.model.temperatureSetPoint
	if setPoint < lowTemperatureGravityThreshold {
		g *= 1 + (lowTemperatureGravityThreshold-setPoint)*lowTemperatureGravityIncreaseRate
	}
	fy := -g * ds.MoleculeMass
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		ds.NextForces[i*2] = 0
		ds.NextForces[i*2+1] = fy
		ds.NextTorques[i] = 0
	}
}

// accumulateLennardJonesForces adds the pairwise LJ contribution between
// all in-container molecule centers within the interaction cutoff. The
// squared distance is floor-clamped so that nearly coincident centers
// produce a large but finite repulsion. repulsiveScale multiplies the
// r^-12 term (used by the water model to enlarge the cold lattice).
func (b *verletBase) accumulateLennardJonesForces(repulsiveScale float64) {
	ds := b.ds
	epsilon := b.model.interactionStrength
	n := ds.NumberOfMolecules()
	for i := 0; i < n; i++ {
		if !ds.InsideContainer[i] {
			continue
		}
		xi := ds.CenterOfMassPositions[i*2]
		yi := ds.CenterOfMassPositions[i*2+1]
		for j := i + 1; j < n; j++ {
			if !ds.InsideContainer[j] {
				continue
			}
			dx := xi - ds.CenterOfMassPositions[j*2]
			dy := yi - ds.CenterOfMassPositions[j*2+1]
			d2 := dx*dx + dy*dy
			if d2 >= interactionCutoffDistanceSqd {
				continue
			}
			if d2 < minDistanceSqd {
				d2 = minDistanceSqd
			}
			r2inv := 1 / d2
			r6inv := r2inv * r2inv * r2inv
			forceScalar := 48 * r2inv * r6inv * (r6inv*repulsiveScale - 0.5) * epsilon
			fx := dx * forceScalar
			fy := dy * forceScalar
			ds.NextForces[i*2] += fx
			ds.NextForces[i*2+1] += fy
			ds.NextForces[j*2] -= fx
			ds.NextForces[j*2+1] -= fy
		}
	}
}

// completeVelocityUpdate performs the second Verlet half: velocities and
// rotation rates from the average of old and new forces/torques, then the
// next-step buffers rotate into the current slots. It also produces the
// instantaneous temperature estimate from the summed kinetic energy.
func (b *verletBase) completeVelocityUpdate(dt float64, rotationRateLimit float64) {
	ds := b.ds
	m := ds.MoleculeMass
	inertia := ds.MoleculeRotationalInertia
	halfDt := 0.5 * dt
	kineticEnergy := 0.0

	n := ds.NumberOfMolecules()
	for i := 0; i < n; i++ {
		vx := ds.Velocities[i*2] + halfDt*(ds.Forces[i*2]+ds.NextForces[i*2])/m
		vy := ds.Velocities[i*2+1] + halfDt*(ds.Forces[i*2+1]+ds.NextForces[i*2+1])/m
		ds.Velocities[i*2] = vx
		ds.Velocities[i*2+1] = vy
		ds.Forces[i*2] = ds.NextForces[i*2]
		ds.Forces[i*2+1] = ds.NextForces[i*2+1]
		kineticEnergy += 0.5 * m * (vx*vx + vy*vy)

		if inertia > 0 {
			rate := ds.RotationRates[i] + halfDt*(ds.Torques[i]+ds.NextTorques[i])/inertia
			if rotationRateLimit > 0 {
				rate = clamp(rate, -rotationRateLimit, rotationRateLimit)
			}
			ds.RotationRates[i] = rate
			ds.Torques[i] = ds.NextTorques[i]
			kineticEnergy += 0.5 * inertia * rate * rate
		}
	}

	if n > 0 {
		b.temperature = kineticEnergy / float64(n) / degreesOfFreedomFactor
	} else {
		b.temperature = 0
	}
}

// updatePressure folds this step's wall impulse into the exponentially
// smoothed pressure and signals the model when the explosion threshold is
// crossed. Pressure is wall force per unit of container perimeter.
func (b *verletBase) updatePressure(dt float64) {
	c := b.model.container
	perimeter := 2 * (c.Width + c.Height)
	impulseTerm := b.wallImpulse / dt / perimeter
	weight := dt / pressureCalcTimeWindow
	b.pressure = weight*impulseTerm + (1-weight)*b.pressure

	if !c.Exploded && b.pressure > b.model.explosionPressure {
		b.pressure = 0
		b.model.explode()
	}
}

func (b *verletBase) syncAtomPositions() {
	b.updater.UpdateAtomPositions(b.ds)
}

// MonatomicVerlet integrates single-atom molecules: Lennard-Jones, walls
// and gravity only.
type MonatomicVerlet struct {
	verletBase
}

func NewMonatomicVerlet(m *SimulationModel) *MonatomicVerlet {
	if m.dataSet.AtomsPerMolecule != 1 {
		panic("engine: monatomic integrator requires 1 atom per molecule")
	}
	return &MonatomicVerlet{verletBase{
		model:     m,
		ds:        m.dataSet,
		updater:   m.positionUpdater,
		wallInset: 0.5,
	}}
}

func (v *MonatomicVerlet) Step(dt float64) {
	v.advancePositions(dt)
	v.beginForceUpdate()
	v.accumulateLennardJonesForces(1.0)
	v.completeVelocityUpdate(dt, 0)
	v.syncAtomPositions()
	v.updatePressure(dt)
}

// DiatomicVerlet integrates rigid two-atom molecules. Forces act between
// molecule centers only; the atoms ride along rigidly, so the topology
// adds rotation but no extra force terms.
type DiatomicVerlet struct {
	verletBase
}

func NewDiatomicVerlet(m *SimulationModel) *DiatomicVerlet {
	if m.dataSet.AtomsPerMolecule != 2 {
		panic("engine: diatomic integrator requires 2 atoms per molecule")
	}
	return &DiatomicVerlet{verletBase{
		model:     m,
		ds:        m.dataSet,
		updater:   m.positionUpdater,
		wallInset: 0.8,
	}}
}

func (v *DiatomicVerlet) Step(dt float64) {
	v.advancePositions(dt)
	v.beginForceUpdate()
	v.accumulateLennardJonesForces(1.0)
	v.completeVelocityUpdate(dt, 0)
	v.syncAtomPositions()
	v.updatePressure(dt)
}
