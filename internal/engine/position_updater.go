package engine

import "math"

// AtomPositionUpdater rebuilds per-atom absolute positions from the rigid
// body state (center of mass + rotation angle). Implementations are pure
// with respect to everything except AtomPositions and, for the monatomic
// variant, InsideContainer.
type AtomPositionUpdater interface {
	UpdateAtomPositions(ds *MoleculeDataSet)
}

// A molecule that has left an exploded container is only considered gone
// once it is this far above the lid, which keeps the inside flag from
// flickering right at the boundary.
const containerExitHysteresis = 2.0

// MonatomicAtomPositionUpdater maps each single-atom molecule's center of
// mass straight to its atom position, clamped to the container, and keeps
// the inside-container flag up to date.
type MonatomicAtomPositionUpdater struct {
	container *Container
}

func NewMonatomicAtomPositionUpdater(c *Container) *MonatomicAtomPositionUpdater {
	return &MonatomicAtomPositionUpdater{container: c}
}

func (u *MonatomicAtomPositionUpdater) UpdateAtomPositions(ds *MoleculeDataSet) {
	if ds.AtomsPerMolecule != 1 {
		panic("engine: monatomic position updater requires 1 atom per molecule")
	}
	c := u.container
	top := c.interiorTop()
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		x := ds.CenterOfMassPositions[i*2]
		y := ds.CenterOfMassPositions[i*2+1]
		if ds.InsideContainer[i] {
			if y > top+containerExitHysteresis {
				ds.InsideContainer[i] = false
			} else {
				x = clamp(x, 0, c.Width)
				y = clamp(y, 0, top)
			}
		} else if x >= 0 && x <= c.Width && y >= 0 && y <= top {
			ds.InsideContainer[i] = true
		}
		ds.AtomPositions[i*2] = x
		ds.AtomPositions[i*2+1] = y
	}
}

// structureAtomPositionUpdater places atoms of rigid multi-atom molecules
// at the structure offsets rotated by the molecule's rotation angle.
type structureAtomPositionUpdater struct {
	structure moleculeStructure
}

// DiatomicAtomPositionUpdater positions the two atoms of a rigid diatomic
// molecule along its rotated bond axis.
type DiatomicAtomPositionUpdater struct {
	structureAtomPositionUpdater
}

func NewDiatomicAtomPositionUpdater() *DiatomicAtomPositionUpdater {
	return &DiatomicAtomPositionUpdater{structureAtomPositionUpdater{diatomicStructure}}
}

func (u *DiatomicAtomPositionUpdater) UpdateAtomPositions(ds *MoleculeDataSet) {
	if ds.AtomsPerMolecule != 2 {
		panic("engine: diatomic position updater requires 2 atoms per molecule")
	}
	u.update(ds)
}

// WaterAtomPositionUpdater positions the oxygen and two hydrogens of a
// rigid water molecule around its center of mass.
type WaterAtomPositionUpdater struct {
	structureAtomPositionUpdater
}

func NewWaterAtomPositionUpdater() *WaterAtomPositionUpdater {
	return &WaterAtomPositionUpdater{structureAtomPositionUpdater{waterStructure}}
}

func (u *WaterAtomPositionUpdater) UpdateAtomPositions(ds *MoleculeDataSet) {
	if ds.AtomsPerMolecule != 3 {
		panic("engine: water position updater requires 3 atoms per molecule")
	}
	u.update(ds)
}

func (u *structureAtomPositionUpdater) update(ds *MoleculeDataSet) {
	apm := ds.AtomsPerMolecule
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		cx := ds.CenterOfMassPositions[i*2]
		cy := ds.CenterOfMassPositions[i*2+1]
		sin, cos := math.Sincos(ds.RotationAngles[i])
		for a := 0; a < apm; a++ {
			ox := u.structure.offsetsX[a]
			oy := u.structure.offsetsY[a]
			ds.AtomPositions[(i*apm+a)*2] = cx + ox*cos - oy*sin
			ds.AtomPositions[(i*apm+a)*2+1] = cy + ox*sin + oy*cos
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
