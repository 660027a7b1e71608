package engine

import "errors"

// Domain errors for model operations. Contract violations (for example
// handing a diatomic data set to the water integrator) are programming
// errors and panic instead.
var (
	// ErrUnknownSubstance indicates a substance name with no catalog entry.
	ErrUnknownSubstance = errors.New("engine: unknown substance")

	// ErrInvalidPhase indicates a phase value outside solid/liquid/gas.
	ErrInvalidPhase = errors.New("engine: invalid target phase")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("engine: parameter out of valid bounds")

	// ErrUnknownParameter indicates a SetParam name with no binding.
	ErrUnknownParameter = errors.New("engine: unknown parameter")
)
