package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlagHighPriority marks a record for the cross-collection high-priority
// feed. The record stays subject to visibility filtering there.
const FlagHighPriority = "High Priority"

// Person is a dossier on a person of interest. IDs are integers assigned
// once at creation and never reused.
type Person struct {
	ID                  int      `json:"id"`
	FullName            string   `json:"full_name"`
	KnownAliases        []string `json:"known_aliases,omitempty"`
	DOB                 string   `json:"dob,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	Nationality         string   `json:"nationality,omitempty"`
	CurrentAddress      string   `json:"current_address,omitempty"`
	GangAffiliation     string   `json:"gang_affiliation,omitempty"`
	KnownAssociates     []string `json:"known_associates,omitempty"`
	OrganizationTies    []string `json:"organization_ties,omitempty"`
	RecentContacts      []string `json:"recent_contacts,omitempty"`
	SuspectedInformant  string   `json:"suspected_informant,omitempty"`
	KnownVehicles       []string `json:"known_vehicles,omitempty"`
	TrackedDevices      []string `json:"tracked_devices,omitempty"`
	RadioFrequencies    []string `json:"radio_frequencies,omitempty"`
	RecentMovements     []string `json:"recent_movements,omitempty"`
	CCTVSnapshots       []string `json:"cctv_snapshots,omitempty"`
	InterceptedAudio    []string `json:"intercepted_audio,omitempty"`
	BlackmailMaterial   string   `json:"blackmail_material,omitempty"`
	CreatedBy           string   `json:"created_by,omitempty"`
	LastUpdated         string   `json:"last_updated,omitempty"`
	AccessLevel         string   `json:"access_level,omitempty"`
	ImageURL            string   `json:"image_url,omitempty"`
	InternalFlags       []string `json:"internal_flags,omitempty"`
	LinkedReports       []string `json:"linked_reports,omitempty"`
	Classification      string   `json:"classification,omitempty"`
	FlaggedAt           string   `json:"flagged_at,omitempty"`

	Extra map[string]any `json:"-"`
}

var personKnownKeys = []string{
	"id", "full_name", "known_aliases", "dob", "gender", "nationality",
	"current_address", "gang_affiliation", "known_associates",
	"organization_ties", "recent_contacts", "suspected_informant",
	"known_vehicles", "tracked_devices", "radio_frequencies",
	"recent_movements", "cctv_snapshots", "intercepted_audio",
	"blackmail_material", "created_by", "last_updated", "access_level",
	"image_url", "internal_flags", "linked_reports", "classification",
	"flagged_at",
}

func (p *Person) UnmarshalJSON(data []byte) error {
	type alias Person
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := decodeExtra(data, personKnownKeys)
	if err != nil {
		return err
	}
	decoded.Extra = extra
	*p = Person(decoded)
	return nil
}

func (p Person) MarshalJSON() ([]byte, error) {
	type alias Person
	return encodeWithExtra(alias(p), p.Extra)
}

// RequiredClearance derives the minimum clearance needed to view this
// dossier from its classification and internal flags.
func (p Person) RequiredClearance() Clearance {
	return RequiredClearanceFor(p.Classification, p.InternalFlags)
}

// HasFlag reports whether the dossier carries the named internal flag,
// compared case-insensitively.
func (p Person) HasFlag(name string) bool {
	return hasFlag(p.InternalFlags, name)
}

// SetHighPriority adds or removes the High Priority flag, stamping or
// clearing the flagged_at timestamp accordingly.
func (p *Person) SetHighPriority(enabled bool) {
	p.InternalFlags = setFlag(p.InternalFlags, FlagHighPriority, enabled)
	if enabled {
		p.FlaggedAt = NowISO()
	} else {
		p.FlaggedAt = ""
	}
}

// ApplyCreateDefaults fills in the construction-time defaults for a freshly
// created dossier.
func (p *Person) ApplyCreateDefaults() {
	if p.CreatedBy == "" {
		p.CreatedBy = "system"
	}
	p.LastUpdated = Today()
}

// Touch refreshes the last_updated date. Called on every mutation.
func (p *Person) Touch() {
	p.LastUpdated = Today()
}

// MatchesQuery reports whether the dossier loosely matches a free-text
// query: a case-insensitive substring check across the searchable fields.
// An empty query matches everything; the search endpoint short-circuits it.
func (p Person) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)

	fields := []string{
		strconv.Itoa(p.ID),
		p.FullName,
		p.DOB,
		p.Gender,
		p.Nationality,
		p.CurrentAddress,
		p.GangAffiliation,
		p.SuspectedInformant,
		p.BlackmailMaterial,
		p.CreatedBy,
		p.AccessLevel,
	}
	fields = append(fields, p.KnownAliases...)
	fields = append(fields, p.KnownAssociates...)
	fields = append(fields, p.OrganizationTies...)
	fields = append(fields, p.RecentContacts...)
	fields = append(fields, p.InternalFlags...)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, name string) bool {
	for _, flag := range flags {
		if strings.EqualFold(flag, name) {
			return true
		}
	}
	return false
}

func setFlag(flags []string, name string, enabled bool) []string {
	if enabled {
		if hasFlag(flags, name) {
			return flags
		}
		return append(flags, name)
	}
	kept := flags[:0]
	for _, flag := range flags {
		if !strings.EqualFold(flag, name) {
			kept = append(kept, flag)
		}
	}
	return kept
}
