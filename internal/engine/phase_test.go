package engine

import (
	"math"
	"testing"
)

func minPairDistance(ds *MoleculeDataSet) float64 {
	min := math.Inf(1)
	n := ds.NumberOfMolecules()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := ds.CenterOfMassPositions[i*2] - ds.CenterOfMassPositions[j*2]
			dy := ds.CenterOfMassPositions[i*2+1] - ds.CenterOfMassPositions[j*2+1]
			if d := math.Hypot(dx, dy); d < min {
				min = d
			}
		}
	}
	return min
}

func TestPhasePlacementSeparation(t *testing.T) {
	substances := []Substance{SubstanceNeon, SubstanceOxygen, SubstanceWater}
	counts := []int{1, 2, 10, 50}

	for _, s := range substances {
		for _, n := range counts {
			m := NewSimulationModel(s, 11)
			m.SetNumberOfMolecules(n)

			for _, p := range []Phase{PhaseSolid, PhaseGas} {
				if err := m.SetPhase(p); err != nil {
					t.Fatal(err)
				}
				if n > 1 {
					if d := minPairDistance(m.dataSet); d < minInitialParticleDistance {
						t.Errorf("%s n=%d %s: pair distance %f below minimum %f",
							s, n, p, d, minInitialParticleDistance)
					}
				}
			}

			// The liquid blob packs tighter but relaxes for 20 steps; the
			// guarantee is only that no centers get near the singular range.
			if err := m.SetPhase(PhaseLiquid); err != nil {
				t.Fatal(err)
			}
			if n > 1 {
				if d := minPairDistance(m.dataSet); d < math.Sqrt(minDistanceSqd)*0.5 {
					t.Errorf("%s n=%d liquid: pair distance %f dangerously small", s, n, d)
				}
			}
		}
	}
}

func TestPhaseSetsTemperature(t *testing.T) {
	m := NewSimulationModel(SubstanceArgon, 2)
	cases := []struct {
		phase Phase
		want  float64
	}{
		{PhaseSolid, SolidTemperature},
		{PhaseLiquid, LiquidTemperature},
		{PhaseGas, GasTemperature},
	}
	for _, tc := range cases {
		if err := m.SetPhase(tc.phase); err != nil {
			t.Fatal(err)
		}
		if m.TemperatureSetPoint() != tc.want {
			t.Errorf("%s: set point %f, want %f", tc.phase, m.TemperatureSetPoint(), tc.want)
		}
		if m.Phase() != tc.phase {
			t.Errorf("phase label %s, want %s", m.Phase(), tc.phase)
		}
	}
}

func TestPhasePlacementInsideContainer(t *testing.T) {
	m := NewSimulationModel(SubstanceWater, 8)
	for _, p := range []Phase{PhaseSolid, PhaseLiquid, PhaseGas} {
		if err := m.SetPhase(p); err != nil {
			t.Fatal(err)
		}
		ds := m.dataSet
		for i := 0; i < ds.NumberOfMolecules(); i++ {
			x := ds.CenterOfMassPositions[i*2]
			y := ds.CenterOfMassPositions[i*2+1]
			if x < 0 || x > m.ContainerWidth() || y < 0 || y > m.ContainerHeight() {
				t.Errorf("%s: molecule %d at (%f,%f) outside container", p, i, x, y)
			}
			if !ds.InsideContainer[i] {
				t.Errorf("%s: molecule %d not flagged inside", p, i)
			}
		}
	}
}

func TestSolidZeroesRotation(t *testing.T) {
	m := NewSimulationModel(SubstanceWater, 21)
	if err := m.SetPhase(PhaseGas); err != nil {
		t.Fatal(err)
	}
	if err := m.SetPhase(PhaseSolid); err != nil {
		t.Fatal(err)
	}
	ds := m.dataSet
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		if ds.RotationAngles[i] != 0 || ds.RotationRates[i] != 0 {
			t.Fatalf("solid seeding should zero rotation, molecule %d has angle=%f rate=%f",
				i, ds.RotationAngles[i], ds.RotationRates[i])
		}
	}
}

func TestGasRandomizesRotation(t *testing.T) {
	m := NewSimulationModel(SubstanceWater, 13)
	if err := m.SetPhase(PhaseGas); err != nil {
		t.Fatal(err)
	}
	ds := m.dataSet
	nonZero := 0
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		if ds.RotationAngles[i] != 0 {
			nonZero++
		}
	}
	if nonZero < ds.NumberOfMolecules()/2 {
		t.Errorf("expected most gas rotation angles randomized, got %d of %d",
			nonZero, ds.NumberOfMolecules())
	}
}

func TestInvalidPhaseRejected(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	if err := m.SetPhase(PhaseCustom); err == nil {
		t.Error("expected error for custom as a target phase")
	}
}

func TestPhaseSeedingIsDeterministic(t *testing.T) {
	a := NewSimulationModel(SubstanceOxygen, 77)
	b := NewSimulationModel(SubstanceOxygen, 77)
	if err := a.SetPhase(PhaseGas); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPhase(PhaseGas); err != nil {
		t.Fatal(err)
	}
	for i := range a.dataSet.CenterOfMassPositions {
		if a.dataSet.CenterOfMassPositions[i] != b.dataSet.CenterOfMassPositions[i] {
			t.Fatal("equal seeds should produce identical gas placement")
		}
	}
}
