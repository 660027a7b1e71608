package engine

import "math"

// Phase identifies a macroscopic phase configuration.
type Phase int

const (
	PhaseSolid Phase = iota
	PhaseLiquid
	PhaseGas
	// PhaseCustom is reported once the user has perturbed the system away
	// from whatever phase was last seeded.
	PhaseCustom
)

func (p Phase) String() string {
	switch p {
	case PhaseSolid:
		return "solid"
	case PhaseLiquid:
		return "liquid"
	case PhaseGas:
		return "gas"
	default:
		return "custom"
	}
}

// Phase set-point temperatures in model units.
const (
	SolidTemperature  = 0.15
	LiquidTemperature = 0.34
	GasTemperature    = 1.0

	MinTemperature = 0.0001
	MaxTemperature = 5.0
)

// Container geometry defaults, in model (sigma) units.
const (
	DefaultContainerWidth  = 24.0
	DefaultContainerHeight = 24.0

	// The lid travels at a bounded speed toward its target height, and is
	// ejected at a fixed speed when the container explodes.
	maxLidSpeed          = 8.0
	explosionLidVelocity = 12.0
	maxExplodedHeight    = 3 * DefaultContainerHeight
)

const (
	// DefaultTimeStep is the nominal integration step used by the front
	// ends and the phase relaxation loop.
	DefaultTimeStep = 0.02

	defaultGravitationalAcceleration = 0.045

	// Below this set point gravity is boosted to compensate for thermostat
	// artifacts that would otherwise let cold crystals float.
	lowTemperatureGravityThreshold    = 0.10
	lowTemperatureGravityIncreaseRate = 50.0

	// Pairwise interaction bounds: pairs beyond the cutoff are skipped,
	// pairs inside the floor are clamped to it so the r^-13 term cannot
	// blow up.
	interactionCutoffDistanceSqd = 6.25
	minDistanceSqd               = 0.7225

	// Pressure is an exponential moving average of wall impulse over this
	// much simulated time.
	pressureCalcTimeWindow = 12.0

	// Smoothed pressure above this triggers a container explosion.
	defaultExplosionPressure = 1.05

	// Kinetic energy per molecule is divided by this to produce the model
	// temperature (translation + rotation in 2-D).
	degreesOfFreedomFactor = 1.5

	maxRotationRate = 16.0
)

// Phase placement constants.
const (
	// Nearest-neighbor spacing of the solid lattice; the Lennard-Jones
	// potential minimum, so a freshly seeded crystal is force-free.
	solidLatticeSpacing = 1.122462 // 2^(1/6)

	// Liquid blobs pack tighter than the crystal.
	liquidPackingFactor = 0.8

	// No two molecules may ever be seeded closer than this.
	minInitialParticleDistance = 1.12

	minWallInset         = 1.0
	maxPlacementAttempts = 500

	liquidRelaxationSteps = 20
)

// Lid momentum transfer: a molecule bouncing off a moving lid picks up
// this fraction of the lid's velocity.
const lidMomentumTransferFactor = 0.3

var sqrt3 = math.Sqrt(3.0)
