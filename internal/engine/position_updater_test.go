package engine

import (
	"math"
	"testing"
)

func TestMonatomicUpdaterClampsToContainer(t *testing.T) {
	c := newContainer()
	u := NewMonatomicAtomPositionUpdater(c)
	ds := NewMoleculeDataSet(1, 4)
	ds.MoleculeMass = 1

	ds.AddMolecule(-1, 5, 0, 0, 0, 0, true)
	ds.AddMolecule(5, c.Height+1, 0, 0, 0, 0, true)

	u.UpdateAtomPositions(ds)

	if ds.AtomPositions[0] != 0 {
		t.Errorf("expected x clamped to 0, got %f", ds.AtomPositions[0])
	}
	if ds.AtomPositions[3] != c.Height {
		t.Errorf("expected y clamped to %f, got %f", c.Height, ds.AtomPositions[3])
	}
}

func TestMonatomicUpdaterExitHysteresis(t *testing.T) {
	c := newContainer()
	u := NewMonatomicAtomPositionUpdater(c)
	ds := NewMoleculeDataSet(1, 2)
	ds.MoleculeMass = 1

	// Just above the lid: still inside thanks to the hysteresis band.
	ds.AddMolecule(5, c.Height+1, 0, 0, 0, 0, true)
	u.UpdateAtomPositions(ds)
	if !ds.InsideContainer[0] {
		t.Error("molecule within hysteresis band should remain inside")
	}

	// Beyond the band: transitions to outside.
	ds.CenterOfMassPositions[1] = c.Height + containerExitHysteresis + 0.1
	u.UpdateAtomPositions(ds)
	if ds.InsideContainer[0] {
		t.Error("molecule beyond hysteresis band should be outside")
	}

	// Back inside the bounds: transitions to inside again.
	ds.CenterOfMassPositions[1] = c.Height / 2
	u.UpdateAtomPositions(ds)
	if !ds.InsideContainer[0] {
		t.Error("molecule back in bounds should be inside")
	}
}

// Re-deriving the center of mass from the atom positions must reproduce
// the stored center of mass for rigid multi-atom molecules.
func TestAtomPositionCenterOfMassRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		updater   AtomPositionUpdater
		structure moleculeStructure
		apm       int
	}{
		{"diatomic", NewDiatomicAtomPositionUpdater(), diatomicStructure, 2},
		{"water", NewWaterAtomPositionUpdater(), waterStructure, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds := NewMoleculeDataSet(tc.apm, 4)
			ds.MoleculeMass = tc.structure.mass
			ds.MoleculeRotationalInertia = tc.structure.rotationalInertia

			angles := []float64{0, 0.7, 2.3, -1.1}
			for i, a := range angles {
				ds.AddMolecule(3+float64(i), 4+float64(i)*0.5, 0, 0, a, 0, true)
			}
			tc.updater.UpdateAtomPositions(ds)

			for i := range angles {
				var cx, cy float64
				for a := 0; a < tc.apm; a++ {
					m := tc.structure.atomMasses[a]
					cx += m * ds.AtomPositions[(i*tc.apm+a)*2]
					cy += m * ds.AtomPositions[(i*tc.apm+a)*2+1]
				}
				cx /= tc.structure.mass
				cy /= tc.structure.mass

				if math.Abs(cx-ds.CenterOfMassPositions[i*2]) > 1e-12 ||
					math.Abs(cy-ds.CenterOfMassPositions[i*2+1]) > 1e-12 {
					t.Errorf("molecule %d: COM round trip (%f,%f) != (%f,%f)",
						i, cx, cy, ds.CenterOfMassPositions[i*2], ds.CenterOfMassPositions[i*2+1])
				}
			}
		})
	}
}

func TestWaterStructureBalanced(t *testing.T) {
	var cx, cy float64
	for i, m := range waterStructure.atomMasses {
		cx += m * waterStructure.offsetsX[i]
		cy += m * waterStructure.offsetsY[i]
	}
	if math.Abs(cx) > 1e-12 || math.Abs(cy) > 1e-12 {
		t.Errorf("water structure mass-weighted offsets not centered: (%e,%e)", cx, cy)
	}
	if waterStructure.rotationalInertia <= 0 {
		t.Error("water rotational inertia must be positive")
	}
}

func TestUpdaterTopologyContract(t *testing.T) {
	ds := NewMoleculeDataSet(1, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for topology mismatch")
		}
	}()
	NewDiatomicAtomPositionUpdater().UpdateAtomPositions(ds)
}
