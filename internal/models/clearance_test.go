package models

import "testing"

func TestClearanceOrdering(t *testing.T) {
	levels := Clearances()

	// The order must be total: every one of the 25 pairs compares exactly
	// by position.
	for i, caller := range levels {
		for j, required := range levels {
			got := caller.AtLeast(required)
			want := i >= j
			if got != want {
				t.Errorf("AtLeast(%s, %s) = %v, want %v", caller, required, got, want)
			}
		}
	}
}

func TestClearanceUnknownCallerFailsClosed(t *testing.T) {
	unknowns := []Clearance{"", "minimal", "REDLINE", "Cosmic", "Top Secret", "unknown"}

	for _, caller := range unknowns {
		for _, required := range Clearances() {
			if caller.AtLeast(required) {
				t.Errorf("AtLeast(%q, %s) = true, want false for unrecognized clearance", caller, required)
			}
		}
	}
}

func TestClearanceUnknownRequiredNeverSatisfied(t *testing.T) {
	if ClearanceRedline.AtLeast("Cosmic") {
		t.Error("AtLeast(Redline, Cosmic) = true, want false for unrecognized required level")
	}
}

func TestClearanceOrderIndex(t *testing.T) {
	tests := []struct {
		clearance Clearance
		want      int
	}{
		{ClearanceMinimal, 0},
		{ClearanceRestricted, 1},
		{ClearanceOperational, 2},
		{ClearanceTopSecret, 3},
		{ClearanceRedline, 4},
		{"", -1},
		{"Nonsense", -1},
	}

	for _, tt := range tests {
		if got := tt.clearance.OrderIndex(); got != tt.want {
			t.Errorf("OrderIndex(%q) = %d, want %d", tt.clearance, got, tt.want)
		}
	}
}
