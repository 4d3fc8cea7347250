package models

import (
	"encoding/json"
	"testing"
)

func TestPersonExtensionFieldsRoundTrip(t *testing.T) {
	input := []byte(`{
		"id": 7,
		"full_name": "Ira Vance",
		"classification": "Classified",
		"internal_flags": ["Person of Interest"],
		"handler_notes": "met at the docks",
		"threat_score": 42
	}`)

	var person Person
	if err := json.Unmarshal(input, &person); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if person.ID != 7 || person.FullName != "Ira Vance" {
		t.Errorf("typed fields not decoded: %+v", person)
	}
	if person.Extra["handler_notes"] != "met at the docks" {
		t.Errorf("extension field lost: %v", person.Extra)
	}
	if person.Extra["threat_score"] != float64(42) {
		t.Errorf("numeric extension field lost: %v", person.Extra)
	}

	out, err := json.Marshal(person)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if decoded["handler_notes"] != "met at the docks" {
		t.Errorf("extension field dropped on marshal: %v", decoded)
	}
	if decoded["full_name"] != "Ira Vance" {
		t.Errorf("typed field dropped on marshal: %v", decoded)
	}
}

func TestPersonExtensionNeverShadowsTypedFields(t *testing.T) {
	person := Person{
		ID:       3,
		FullName: "Real Name",
		Extra:    map[string]any{"full_name": "Spoofed Name"},
	}

	out, err := json.Marshal(person)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["full_name"] != "Real Name" {
		t.Errorf("extension entry shadowed a typed field: %v", decoded["full_name"])
	}
}

func TestPersonMatchesQuery(t *testing.T) {
	person := Person{
		ID:              12,
		FullName:        "Dana Cole",
		KnownAliases:    []string{"The Ghost"},
		Nationality:     "Veridian",
		KnownAssociates: []string{"M. Reyes"},
		InternalFlags:   []string{"Person of Interest"},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"dana", true},
		{"ghost", true},
		{"reyes", true},
		{"12", true},
		{"veridian", true},
		{"person of interest", true},
		{"nobody", false},
		{"", true},
	}

	for _, tt := range tests {
		if got := person.MatchesQuery(tt.query); got != tt.want {
			t.Errorf("MatchesQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestSetHighPriority(t *testing.T) {
	var person Person

	person.SetHighPriority(true)
	if !person.HasFlag(FlagHighPriority) {
		t.Fatal("flag not set")
	}
	if person.FlaggedAt == "" {
		t.Error("flagged_at not stamped")
	}

	// Setting twice must not duplicate the flag.
	person.SetHighPriority(true)
	count := 0
	for _, flag := range person.InternalFlags {
		if flag == FlagHighPriority {
			count++
		}
	}
	if count != 1 {
		t.Errorf("flag duplicated: %v", person.InternalFlags)
	}

	person.SetHighPriority(false)
	if person.HasFlag(FlagHighPriority) {
		t.Error("flag not cleared")
	}
	if person.FlaggedAt != "" {
		t.Error("flagged_at not cleared")
	}
}

func TestMergePatchProtectsKeys(t *testing.T) {
	person := Person{ID: 5, FullName: "Before", CreatedBy: "ops"}

	patch := map[string]json.RawMessage{
		"id":        json.RawMessage(`99`),
		"full_name": json.RawMessage(`"After"`),
		"new_field": json.RawMessage(`"kept"`),
	}
	if err := MergePatch(&person, patch, "id"); err != nil {
		t.Fatalf("MergePatch: %v", err)
	}

	if person.ID != 5 {
		t.Errorf("protected id changed to %d", person.ID)
	}
	if person.FullName != "After" {
		t.Errorf("full_name not updated: %q", person.FullName)
	}
	if person.Extra["new_field"] != "kept" {
		t.Errorf("unknown patch field not retained: %v", person.Extra)
	}
	if person.CreatedBy != "ops" {
		t.Errorf("untouched field lost: %q", person.CreatedBy)
	}
}
