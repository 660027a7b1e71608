// Package engine implements the molecular-dynamics core of the states of
// matter simulation.
//
// A fixed population of particles (single atoms, rigid diatomic molecules,
// or rigid triatomic water molecules) is confined in a 2-D container and
// integrated under a Lennard-Jones pairwise potential, gravity, wall
// reflection and, for water, a simplified electrostatic charge model. The
// main pieces are:
//
//   - [MoleculeDataSet]: structure-of-arrays kinematic/dynamic state for
//     one molecule topology
//   - [AtomPositionUpdater]: rebuilds absolute atom positions from rigid
//     body center of mass + rotation
//   - the Verlet integrator family (monatomic, diatomic, water): one
//     velocity-Verlet step including forces, walls, pressure and
//     temperature
//   - [PhaseStateChanger]: discontinuous re-initialization into solid,
//     liquid or gas configurations
//   - [SimulationModel]: owns all of the above plus container geometry,
//     the temperature set point and the explosion state
//
// All quantities are in dimensionless Lennard-Jones units (sigma = epsilon
// = 1 for the reference substance).
//
// # Thread Safety
//
// SimulationModel instances are NOT thread-safe. Exactly one Step call may
// be active at a time; readers must only observe state between steps.
package engine
