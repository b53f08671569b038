package particle

import "testing"

func TestLenAndAccessors(t *testing.T) {
	s := New(3, 4, true, true)
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	copy(s.Position(1), []float64{0.1, 0.2, 0.3})
	copy(s.Velocity(1), []float64{1, 2, 3})
	s.Mass[1] = 5

	if got := s.Position(1); got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.3 {
		t.Errorf("Position(1) = %v", got)
	}
	if got := s.Velocity(1); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Velocity(1) = %v", got)
	}
	if s.MassOf(1) != 5 {
		t.Errorf("MassOf(1) = %v, want 5", s.MassOf(1))
	}
	if s.MassOf(0) != 0 {
		t.Errorf("MassOf(0) = %v, want 0 (unset)", s.MassOf(0))
	}
}

func TestMassOfDefaultsToUnity(t *testing.T) {
	s := New(2, 3, false, false)
	for i := 0; i < s.Len(); i++ {
		if s.MassOf(i) != 1 {
			t.Errorf("MassOf(%d) = %v, want 1 when no mass field is present", i, s.MassOf(i))
		}
	}
	if got, want := s.TotalMass(), 3.0; got != want {
		t.Errorf("TotalMass() = %v, want %v", got, want)
	}
}

func TestValidateRejectsOutOfRangePositions(t *testing.T) {
	s := New(2, 2, false, false)
	copy(s.Position(0), []float64{0.5, 0.9})
	copy(s.Position(1), []float64{1.0, 0.1})
	if err := s.Validate(); err == nil {
		t.Fatalf("expected Validate to reject a position of 1.0 (outside [0,1))")
	}
}

func TestValidateAcceptsInRangePositions(t *testing.T) {
	s := New(2, 2, false, false)
	copy(s.Position(0), []float64{0.0, 0.999999})
	copy(s.Position(1), []float64{0.5, 0.5})
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
