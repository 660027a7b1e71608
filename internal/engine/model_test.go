package engine

import (
	"errors"
	"math"
	"testing"
)

func TestSubstanceSwitchRebuildsTopology(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 3)
	cases := []struct {
		s      Substance
		apm    int
		defCnt int
	}{
		{SubstanceNeon, 1, 64},
		{SubstanceOxygen, 2, 50},
		{SubstanceWater, 3, 50},
		{SubstanceArgon, 1, 64},
		{SubstanceAdjustableAtom, 1, 64},
	}
	for _, tc := range cases {
		if err := m.SetSubstance(tc.s); err != nil {
			t.Fatal(err)
		}
		if m.Substance() != tc.s {
			t.Errorf("substance %s, want %s", m.Substance(), tc.s)
		}
		if m.dataSet.AtomsPerMolecule != tc.apm {
			t.Errorf("%s: atoms per molecule %d, want %d", tc.s, m.dataSet.AtomsPerMolecule, tc.apm)
		}
		if m.NumberOfMolecules() != tc.defCnt {
			t.Errorf("%s: %d molecules, want %d", tc.s, m.NumberOfMolecules(), tc.defCnt)
		}
		if m.Phase() != PhaseSolid {
			t.Errorf("%s: phase %s after switch, want solid", tc.s, m.Phase())
		}
		if got := len(m.Particles()); got != tc.defCnt*tc.apm {
			t.Errorf("%s: %d particles, want %d", tc.s, got, tc.defCnt*tc.apm)
		}
	}
}

func TestUnknownSubstanceRejected(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	if err := m.SetSubstance(Substance(99)); !errors.Is(err, ErrUnknownSubstance) {
		t.Fatalf("got %v, want ErrUnknownSubstance", err)
	}
	// A failed switch must leave the previous substance running.
	if m.Substance() != SubstanceNeon {
		t.Errorf("substance changed after failed switch")
	}
	m.Step(DefaultTimeStep)
}

func TestSetNumberOfMolecules(t *testing.T) {
	m := NewSimulationModel(SubstanceArgon, 5)

	m.SetNumberOfMolecules(10)
	if m.NumberOfMolecules() != 10 {
		t.Fatalf("shrink: %d molecules, want 10", m.NumberOfMolecules())
	}

	m.SetNumberOfMolecules(30)
	if m.NumberOfMolecules() != 30 {
		t.Fatalf("grow: %d molecules, want 30", m.NumberOfMolecules())
	}
	// Injected molecules start under the lid, inside the container.
	ds := m.dataSet
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		y := ds.CenterOfMassPositions[i*2+1]
		if y < 0 || y > m.ContainerHeight() {
			t.Errorf("molecule %d injected at y=%f outside container", i, y)
		}
		if !ds.InsideContainer[i] {
			t.Errorf("molecule %d injected outside", i)
		}
	}
	if m.Phase() != PhaseCustom {
		t.Errorf("phase %s after count change, want custom", m.Phase())
	}

	m.SetNumberOfMolecules(0)
	if m.NumberOfMolecules() != 1 {
		t.Errorf("count floor: %d molecules, want 1", m.NumberOfMolecules())
	}
}

func TestSetTemperatureSetPointBounds(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	if err := m.SetTemperatureSetPoint(MaxTemperature + 1); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}
	if err := m.SetTemperatureSetPoint(-0.5); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}
	if err := m.SetTemperatureSetPoint(2.0); err != nil {
		t.Fatal(err)
	}
	if m.TemperatureSetPoint() != 2.0 {
		t.Errorf("set point %f, want 2.0", m.TemperatureSetPoint())
	}
	if m.Phase() != PhaseCustom {
		t.Errorf("phase %s after direct set point, want custom", m.Phase())
	}
}

func TestHeatCoolDriftsSetPoint(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	if err := m.SetHeatCoolAmount(1.5); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}

	if err := m.SetHeatCoolAmount(1.0); err != nil {
		t.Fatal(err)
	}
	before := m.TemperatureSetPoint()
	m.Step(DefaultTimeStep)
	want := before + heatCoolRate*DefaultTimeStep
	if math.Abs(m.TemperatureSetPoint()-want) > 1e-12 {
		t.Errorf("set point %f after heating, want %f", m.TemperatureSetPoint(), want)
	}
	if m.Phase() != PhaseCustom {
		t.Errorf("phase %s while heating, want custom", m.Phase())
	}

	// Cooling pins at the minimum rather than crossing zero.
	if err := m.SetHeatCoolAmount(-1.0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2000; i++ {
		m.Step(DefaultTimeStep)
	}
	if m.TemperatureSetPoint() != MinTemperature {
		t.Errorf("set point %f after long cooling, want %f", m.TemperatureSetPoint(), MinTemperature)
	}
}

func TestLidTargetClampAndMotion(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	initial := m.ContainerHeight()

	m.SetTargetContainerHeight(initial * 10)
	if m.TargetContainerHeight() != initial {
		t.Errorf("target %f, want clamp to %f", m.TargetContainerHeight(), initial)
	}

	m.SetTargetContainerHeight(initial / 2)
	for i := 0; i < 5000 && m.ContainerHeight() > initial/2; i++ {
		m.Step(DefaultTimeStep)
	}
	if math.Abs(m.ContainerHeight()-initial/2) > 1e-9 {
		t.Errorf("height %f after lid travel, want %f", m.ContainerHeight(), initial/2)
	}
}

func TestReturnLidRemovesEscapees(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 9)
	m.SetNumberOfMolecules(10)
	if err := m.SetPhase(PhaseGas); err != nil {
		t.Fatal(err)
	}

	// ReturnLid on an intact container does nothing.
	m.ReturnLid()
	if m.NumberOfMolecules() != 10 {
		t.Fatalf("intact ReturnLid changed population to %d", m.NumberOfMolecules())
	}

	if err := m.SetParam("explosionPressure", 1e-9); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5000 && !m.IsExploded(); i++ {
		m.Step(DefaultTimeStep)
	}
	if !m.IsExploded() {
		t.Fatal("container never exploded at threshold 1e-9")
	}
	// Let some molecules escape through the open top.
	for i := 0; i < 500; i++ {
		m.Step(DefaultTimeStep)
	}

	m.ReturnLid()
	if m.IsExploded() {
		t.Error("still exploded after ReturnLid")
	}
	initial := m.ContainerHeight()
	ds := m.dataSet
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		if !ds.InsideContainer[i] {
			t.Errorf("molecule %d still outside after ReturnLid", i)
		}
		if ds.CenterOfMassPositions[i*2+1] > initial {
			t.Errorf("molecule %d above the re-seated lid", i)
		}
	}
	if m.Pressure() != 0 {
		t.Errorf("pressure %f after ReturnLid, want 0", m.Pressure())
	}
	m.Step(DefaultTimeStep)
}

func TestResetRestoresSolid(t *testing.T) {
	m := NewSimulationModel(SubstanceOxygen, 4)
	if err := m.SetPhase(PhaseGas); err != nil {
		t.Fatal(err)
	}
	if err := m.SetHeatCoolAmount(1.0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		m.Step(DefaultTimeStep)
	}

	m.Reset()
	if m.Phase() != PhaseSolid {
		t.Errorf("phase %s after reset, want solid", m.Phase())
	}
	if m.TemperatureSetPoint() != SolidTemperature {
		t.Errorf("set point %f after reset, want %f", m.TemperatureSetPoint(), SolidTemperature)
	}
	if m.Elapsed() != 0 || m.Steps() != 0 {
		t.Errorf("clock not cleared: elapsed=%f steps=%d", m.Elapsed(), m.Steps())
	}
	if m.Substance() != SubstanceOxygen {
		t.Errorf("substance %s after reset, want oxygen", m.Substance())
	}
}

func TestParams(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	p := m.GetParams()
	for _, name := range []string{"gravity", "interactionStrength", "explosionPressure"} {
		if _, ok := p[name]; !ok {
			t.Errorf("missing parameter %q", name)
		}
	}

	if err := m.SetParam("gravity", 0); err != nil {
		t.Fatal(err)
	}
	if m.GetParams()["gravity"] != 0 {
		t.Error("gravity not applied")
	}
	if err := m.SetParam("gravity", -1); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}
	if err := m.SetParam("interactionStrength", 0); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}
	if err := m.SetParam("bogus", 1); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("got %v, want ErrUnknownParameter", err)
	}
}

func TestStepPanicsOnBadDt(t *testing.T) {
	m := NewSimulationModel(SubstanceNeon, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive dt")
		}
	}()
	m.Step(0)
}
