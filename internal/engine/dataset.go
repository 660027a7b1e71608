package engine

// MoleculeDataSet holds the kinematic and dynamic state for every molecule
// of a single topology, as a structure of arrays. Vector quantities are
// stored interleaved (x at 2*i, y at 2*i+1) so the pairwise force loop
// walks memory linearly. Atom positions are molecule-major: the atoms of
// molecule i occupy slots [i*AtomsPerMolecule, (i+1)*AtomsPerMolecule).
//
// The arrays are sized to capacity once and resized, never reallocated per
// step; AddMolecule grows them only when the capacity is exhausted.
type MoleculeDataSet struct {
	AtomsPerMolecule int

	// Per molecule, interleaved x/y.
	CenterOfMassPositions []float64
	Velocities            []float64
	Forces                []float64
	NextForces            []float64

	// Per molecule, scalar.
	RotationAngles  []float64
	RotationRates   []float64
	Torques         []float64
	NextTorques     []float64
	InsideContainer []bool

	// Per atom, interleaved x/y.
	AtomPositions []float64

	MoleculeMass              float64
	MoleculeRotationalInertia float64

	numberOfMolecules int
}

// NewMoleculeDataSet creates an empty data set for the given topology with
// room for capacity molecules. atomsPerMolecule must be 1, 2 or 3.
func NewMoleculeDataSet(atomsPerMolecule, capacity int) *MoleculeDataSet {
	if atomsPerMolecule < 1 || atomsPerMolecule > 3 {
		panic("engine: atoms per molecule must be 1, 2 or 3")
	}
	if capacity < 1 {
		capacity = 1
	}
	return &MoleculeDataSet{
		AtomsPerMolecule:      atomsPerMolecule,
		CenterOfMassPositions: make([]float64, 0, capacity*2),
		Velocities:            make([]float64, 0, capacity*2),
		Forces:                make([]float64, 0, capacity*2),
		NextForces:            make([]float64, 0, capacity*2),
		RotationAngles:        make([]float64, 0, capacity),
		RotationRates:         make([]float64, 0, capacity),
		Torques:               make([]float64, 0, capacity),
		NextTorques:           make([]float64, 0, capacity),
		InsideContainer:       make([]bool, 0, capacity),
		AtomPositions:         make([]float64, 0, capacity*atomsPerMolecule*2),
	}
}

func (ds *MoleculeDataSet) NumberOfMolecules() int { return ds.numberOfMolecules }

func (ds *MoleculeDataSet) NumberOfAtoms() int {
	return ds.numberOfMolecules * ds.AtomsPerMolecule
}

// AddMolecule appends a molecule with the given center-of-mass position,
// velocity, rotation angle and rotation rate. Atom positions are appended
// zeroed; callers resynchronize them through an AtomPositionUpdater.
func (ds *MoleculeDataSet) AddMolecule(x, y, vx, vy, angle, rate float64, inside bool) {
	ds.CenterOfMassPositions = append(ds.CenterOfMassPositions, x, y)
	ds.Velocities = append(ds.Velocities, vx, vy)
	ds.Forces = append(ds.Forces, 0, 0)
	ds.NextForces = append(ds.NextForces, 0, 0)
	ds.RotationAngles = append(ds.RotationAngles, angle)
	ds.RotationRates = append(ds.RotationRates, rate)
	ds.Torques = append(ds.Torques, 0)
	ds.NextTorques = append(ds.NextTorques, 0)
	ds.InsideContainer = append(ds.InsideContainer, inside)
	for a := 0; a < ds.AtomsPerMolecule; a++ {
		ds.AtomPositions = append(ds.AtomPositions, 0, 0)
	}
	ds.numberOfMolecules++
}

// RemoveMolecule removes molecule i by swapping the last molecule into its
// slot, keeping all arrays dense and in lock-step.
func (ds *MoleculeDataSet) RemoveMolecule(i int) {
	n := ds.numberOfMolecules
	if i < 0 || i >= n {
		panic("engine: molecule index out of range")
	}
	last := n - 1
	if i != last {
		ds.CenterOfMassPositions[i*2] = ds.CenterOfMassPositions[last*2]
		ds.CenterOfMassPositions[i*2+1] = ds.CenterOfMassPositions[last*2+1]
		ds.Velocities[i*2] = ds.Velocities[last*2]
		ds.Velocities[i*2+1] = ds.Velocities[last*2+1]
		ds.Forces[i*2] = ds.Forces[last*2]
		ds.Forces[i*2+1] = ds.Forces[last*2+1]
		ds.NextForces[i*2] = ds.NextForces[last*2]
		ds.NextForces[i*2+1] = ds.NextForces[last*2+1]
		ds.RotationAngles[i] = ds.RotationAngles[last]
		ds.RotationRates[i] = ds.RotationRates[last]
		ds.Torques[i] = ds.Torques[last]
		ds.NextTorques[i] = ds.NextTorques[last]
		ds.InsideContainer[i] = ds.InsideContainer[last]
		apm := ds.AtomsPerMolecule
		for a := 0; a < apm*2; a++ {
			ds.AtomPositions[i*apm*2+a] = ds.AtomPositions[last*apm*2+a]
		}
	}
	ds.CenterOfMassPositions = ds.CenterOfMassPositions[:last*2]
	ds.Velocities = ds.Velocities[:last*2]
	ds.Forces = ds.Forces[:last*2]
	ds.NextForces = ds.NextForces[:last*2]
	ds.RotationAngles = ds.RotationAngles[:last]
	ds.RotationRates = ds.RotationRates[:last]
	ds.Torques = ds.Torques[:last]
	ds.NextTorques = ds.NextTorques[:last]
	ds.InsideContainer = ds.InsideContainer[:last]
	ds.AtomPositions = ds.AtomPositions[:last*ds.AtomsPerMolecule*2]
	ds.numberOfMolecules = last
}
