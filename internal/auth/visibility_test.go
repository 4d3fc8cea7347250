package auth

import (
	"errors"
	"testing"

	"intel-archive/internal/models"
)

func TestRequireClearance(t *testing.T) {
	operational := &Session{Username: "vega", Clearance: models.ClearanceOperational}

	if _, err := RequireClearance(nil, models.ClearanceMinimal); !errors.Is(err, models.ErrNotAuthenticated) {
		t.Errorf("nil session: err = %v, want ErrNotAuthenticated", err)
	}

	if _, err := RequireClearance(operational, models.ClearanceTopSecret); !errors.Is(err, models.ErrInsufficientClearance) {
		t.Errorf("below minimum: err = %v, want ErrInsufficientClearance", err)
	}

	for _, minLevel := range []models.Clearance{models.ClearanceMinimal, models.ClearanceOperational} {
		got, err := RequireClearance(operational, minLevel)
		if err != nil {
			t.Errorf("at or above %s: unexpected error %v", minLevel, err)
		}
		if got != operational {
			t.Errorf("at or above %s: session not passed through", minLevel)
		}
	}

	// A session carrying a clearance the lattice does not know satisfies
	// nothing.
	forged := &Session{Username: "x", Clearance: "Cosmic"}
	if _, err := RequireClearance(forged, models.ClearanceMinimal); !errors.Is(err, models.ErrInsufficientClearance) {
		t.Errorf("unknown clearance: err = %v, want ErrInsufficientClearance", err)
	}
}

func TestCanView(t *testing.T) {
	classified := models.Person{Classification: "Classified"} // requires Operational
	plain := models.Person{}                                  // requires Minimal

	tests := []struct {
		name    string
		session *Session
		record  models.Protected
		want    bool
	}{
		{"nil session sees nothing", nil, plain, false},
		{"minimal sees plain", &Session{Clearance: models.ClearanceMinimal}, plain, true},
		{"minimal blocked from classified", &Session{Clearance: models.ClearanceMinimal}, classified, false},
		{"operational sees classified", &Session{Clearance: models.ClearanceOperational}, classified, true},
		{"redline sees everything", &Session{Clearance: models.ClearanceRedline}, classified, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanView(tt.session, tt.record); got != tt.want {
				t.Errorf("CanView = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterVisible(t *testing.T) {
	people := []models.Person{
		{ID: 1, FullName: "Open Record"},
		{ID: 2, FullName: "Flagged", InternalFlags: []string{models.FlagPersonOfInterest}},
		{ID: 3, FullName: "Deep Cover", Classification: "Redline"},
	}

	minimal := FilterVisible(&Session{Clearance: models.ClearanceMinimal}, people)
	if len(minimal) != 1 || minimal[0].ID != 1 {
		t.Errorf("minimal caller: got %d records, want only the open one: %+v", len(minimal), minimal)
	}

	restricted := FilterVisible(&Session{Clearance: models.ClearanceRestricted}, people)
	if len(restricted) != 2 {
		t.Errorf("restricted caller: got %d records, want 2", len(restricted))
	}

	redline := FilterVisible(&Session{Clearance: models.ClearanceRedline}, people)
	if len(redline) != 3 {
		t.Errorf("redline caller: got %d records, want all 3", len(redline))
	}

	none := FilterVisible(nil, people)
	if len(none) != 0 {
		t.Errorf("nil session: got %d records, want none", len(none))
	}
	if none == nil {
		t.Error("filter must return an empty slice, not nil, so responses encode as []")
	}
}
