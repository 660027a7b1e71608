package engine

import (
	"math"
	"math/rand"
)

// PhaseStateChanger discontinuously re-initializes the molecule
// configuration into a target macroscopic phase. Implementations never
// produce two exactly coincident molecule centers; that would make the
// very next Lennard-Jones evaluation singular.
type PhaseStateChanger interface {
	SetPhase(p Phase) error
}

// phaseChangerBase implements placement for all topologies. Variants
// differ only in their lattice spacing and whether rotational state is
// seeded.
type phaseChangerBase struct {
	model *SimulationModel
	rng   *rand.Rand

	// Nearest-neighbor spacing of the seeded solid lattice.
	spacing float64

	// Whether the topology has rotational degrees of freedom to seed.
	rotational bool
}

func (pc *phaseChangerBase) SetPhase(p Phase) error {
	switch p {
	case PhaseSolid:
		pc.model.setPhaseTemperature(SolidTemperature)
		pc.setSolid()
	case PhaseLiquid:
		pc.model.setPhaseTemperature(LiquidTemperature)
		pc.setLiquid()
	case PhaseGas:
		pc.model.setPhaseTemperature(GasTemperature)
		pc.setGas()
	default:
		return ErrInvalidPhase
	}
	pc.model.positionUpdater.UpdateAtomPositions(pc.model.dataSet)
	return nil
}

// setSolid places molecule centers on a hexagonal-looking lattice:
// ceil(sqrt(n)) molecules per row, alternating rows offset by half a
// spacing, sitting just above the container floor. Rotations are zeroed
// so diatomic and water molecules lie flat.
func (pc *phaseChangerBase) setSolid() {
	ds := pc.model.dataSet
	c := pc.model.container
	n := ds.NumberOfMolecules()
	if n == 0 {
		return
	}
	perRow := int(math.Ceil(math.Sqrt(float64(n))))
	rowHeight := pc.spacing * sqrt3 / 2
	startX := (c.Width - float64(perRow-1)*pc.spacing) / 2
	startY := minWallInset

	velScale := math.Sqrt(pc.model.temperatureSetPoint / ds.MoleculeMass)
	for i := 0; i < n; i++ {
		row := i / perRow
		col := i % perRow
		x := startX + float64(col)*pc.spacing
		if row%2 == 1 {
			x += pc.spacing / 2
		}
		y := startY + float64(row)*rowHeight
		pc.seedMolecule(i, x, y, velScale, 0, 0)
	}
}

// setLiquid packs the molecules into a dense blob near the bottom center
// of the container: one molecule in the middle, then concentric shells at
// the liquid packing spacing. Rotations are randomized.
func (pc *phaseChangerBase) setLiquid() {
	ds := pc.model.dataSet
	c := pc.model.container
	n := ds.NumberOfMolecules()
	if n == 0 {
		return
	}
	spacing := pc.spacing * liquidPackingFactor
	shells := 1.0
	for shellCapacity(shells) < n {
		shells++
	}
	cx := c.Width / 2
	cy := minWallInset + shells*spacing

	velScale := math.Sqrt(pc.model.temperatureSetPoint / ds.MoleculeMass)
	placed := 0
	pc.seedMolecule(0, cx, cy, velScale, pc.randomAngle(), 0)
	placed++
	for s := 1.0; placed < n; s++ {
		radius := s * spacing
		slots := int(math.Floor(2 * math.Pi * s))
		for k := 0; k < slots && placed < n; k++ {
			angle := 2 * math.Pi * float64(k) / float64(slots)
			// Small angular jitter keeps the blob irregular without ever
			// collapsing two centers together.
			angle += (pc.rng.Float64() - 0.5) * 0.2 / s
			x := cx + radius*math.Cos(angle)
			y := cy + radius*math.Sin(angle)
			pc.seedMolecule(placed, x, y, velScale, pc.randomAngle(), 0)
			placed++
		}
	}
}

// shellCapacity is the number of molecules that fit in the center spot
// plus shells 1..s of the liquid blob.
func shellCapacity(s float64) int {
	capacity := 1
	for k := 1.0; k <= s; k++ {
		capacity += int(math.Floor(2 * math.Pi * k))
	}
	return capacity
}

// setGas scatters the molecules uniformly across the container, keeping
// every pair at least the minimum seed distance apart. If a random slot
// cannot be found within the attempt budget the molecule falls back to a
// lattice slot, which preserves the separation invariant unconditionally.
func (pc *phaseChangerBase) setGas() {
	ds := pc.model.dataSet
	c := pc.model.container
	n := ds.NumberOfMolecules()
	if n == 0 {
		return
	}
	minX := minWallInset
	maxX := c.Width - minWallInset
	minY := minWallInset
	maxY := c.Height - minWallInset

	velScale := math.Sqrt(pc.model.temperatureSetPoint / ds.MoleculeMass)
	rateScale := 0.0
	if pc.rotational && ds.MoleculeRotationalInertia > 0 {
		rateScale = math.Sqrt(pc.model.temperatureSetPoint / ds.MoleculeRotationalInertia)
	}

	for i := 0; i < n; i++ {
		var x, y float64
		found := false
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			x = minX + pc.rng.Float64()*(maxX-minX)
			y = minY + pc.rng.Float64()*(maxY-minY)
			if pc.farEnough(i, x, y) {
				found = true
				break
			}
		}
		if !found {
			x, y = pc.latticeSlot(i, c)
		}
		rate := 0.0
		if rateScale > 0 {
			rate = pc.rng.NormFloat64() * rateScale
		}
		pc.seedMolecule(i, x, y, velScale, pc.randomAngle(), rate)
	}
}

func (pc *phaseChangerBase) farEnough(i int, x, y float64) bool {
	ds := pc.model.dataSet
	minSqd := minInitialParticleDistance * minInitialParticleDistance
	for j := 0; j < i; j++ {
		dx := x - ds.CenterOfMassPositions[j*2]
		dy := y - ds.CenterOfMassPositions[j*2+1]
		if dx*dx+dy*dy < minSqd {
			return false
		}
	}
	return true
}

func (pc *phaseChangerBase) latticeSlot(i int, c *Container) (float64, float64) {
	perRow := int((c.Width - 2*minWallInset) / minInitialParticleDistance)
	if perRow < 1 {
		perRow = 1
	}
	row := i / perRow
	col := i % perRow
	return minWallInset + float64(col)*minInitialParticleDistance,
		minWallInset + float64(row)*minInitialParticleDistance
}

// seedMolecule writes position, a Gaussian thermal velocity and the
// rotational state for molecule i, and clears its force history.
func (pc *phaseChangerBase) seedMolecule(i int, x, y, velScale, angle, rate float64) {
	ds := pc.model.dataSet
	ds.CenterOfMassPositions[i*2] = x
	ds.CenterOfMassPositions[i*2+1] = y
	ds.Velocities[i*2] = pc.rng.NormFloat64() * velScale
	ds.Velocities[i*2+1] = pc.rng.NormFloat64() * velScale
	ds.Forces[i*2] = 0
	ds.Forces[i*2+1] = 0
	ds.NextForces[i*2] = 0
	ds.NextForces[i*2+1] = 0
	if pc.rotational {
		ds.RotationAngles[i] = angle
		ds.RotationRates[i] = rate
	} else {
		ds.RotationAngles[i] = 0
		ds.RotationRates[i] = 0
	}
	ds.Torques[i] = 0
	ds.NextTorques[i] = 0
	ds.InsideContainer[i] = true
}

func (pc *phaseChangerBase) randomAngle() float64 {
	if !pc.rotational {
		return 0
	}
	return pc.rng.Float64() * 2 * math.Pi
}

// MonatomicPhaseStateChanger seeds phase configurations for single-atom
// molecules.
type MonatomicPhaseStateChanger struct{ phaseChangerBase }

func NewMonatomicPhaseStateChanger(m *SimulationModel, seed int64) *MonatomicPhaseStateChanger {
	return &MonatomicPhaseStateChanger{phaseChangerBase{
		model:   m,
		rng:     rand.New(rand.NewSource(seed)),
		spacing: solidLatticeSpacing,
	}}
}

// DiatomicPhaseStateChanger seeds phase configurations for rigid diatomic
// molecules. The lattice spacing allows for the bond extent.
type DiatomicPhaseStateChanger struct{ phaseChangerBase }

func NewDiatomicPhaseStateChanger(m *SimulationModel, seed int64) *DiatomicPhaseStateChanger {
	return &DiatomicPhaseStateChanger{phaseChangerBase{
		model:      m,
		rng:        rand.New(rand.NewSource(seed)),
		spacing:    solidLatticeSpacing * 1.67,
		rotational: true,
	}}
}

// WaterPhaseStateChanger seeds phase configurations for water molecules.
type WaterPhaseStateChanger struct{ phaseChangerBase }

func NewWaterPhaseStateChanger(m *SimulationModel, seed int64) *WaterPhaseStateChanger {
	return &WaterPhaseStateChanger{phaseChangerBase{
		model:      m,
		rng:        rand.New(rand.NewSource(seed)),
		spacing:    solidLatticeSpacing * 1.34,
		rotational: true,
	}}
}
