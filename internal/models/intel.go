package models

import "encoding/json"

// Intel is an intelligence report. It shares the dossier's id-allocation and
// timestamp invariants, and its required clearance is derived by the same
// resolver so classification behaves identically across collections.
type Intel struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Summary             string   `json:"summary,omitempty"`
	LinkedPersons       []string `json:"linked_persons,omitempty"`
	LinkedReports       []string `json:"linked_reports,omitempty"`
	OperationCode       string   `json:"operation_code,omitempty"`
	Status              string   `json:"status,omitempty"`
	Source              string   `json:"source,omitempty"`
	CollectionMethod    string   `json:"collection_method,omitempty"`
	Classification      string   `json:"classification,omitempty"`
	LinkedOrganizations []string `json:"linked_organizations,omitempty"`
	LinkedOperations    []string `json:"linked_operations,omitempty"`
	CreatedBy           string   `json:"created_by,omitempty"`
	LastUpdated         string   `json:"last_updated,omitempty"`
	IncidentDate        string   `json:"incident_date,omitempty"`
	Location            any      `json:"location,omitempty"`
	Attachments         any      `json:"attachments,omitempty"`
	InternalFlags       []string `json:"internal_flags,omitempty"`
	FlaggedAt           string   `json:"flagged_at,omitempty"`

	Extra map[string]any `json:"-"`
}

var intelKnownKeys = []string{
	"id", "title", "summary", "linked_persons", "linked_reports",
	"operation_code", "status", "source", "collection_method",
	"classification", "linked_organizations", "linked_operations",
	"created_by", "last_updated", "incident_date", "location",
	"attachments", "internal_flags", "flagged_at",
}

func (r *Intel) UnmarshalJSON(data []byte) error {
	type alias Intel
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := decodeExtra(data, intelKnownKeys)
	if err != nil {
		return err
	}
	decoded.Extra = extra
	*r = Intel(decoded)
	return nil
}

func (r Intel) MarshalJSON() ([]byte, error) {
	type alias Intel
	return encodeWithExtra(alias(r), r.Extra)
}

// RequiredClearance derives the minimum clearance needed to view this report.
func (r Intel) RequiredClearance() Clearance {
	return RequiredClearanceFor(r.Classification, r.InternalFlags)
}

// HasFlag reports whether the report carries the named internal flag.
func (r Intel) HasFlag(name string) bool {
	return hasFlag(r.InternalFlags, name)
}

// SetHighPriority adds or removes the High Priority flag, stamping or
// clearing the flagged_at timestamp accordingly.
func (r *Intel) SetHighPriority(enabled bool) {
	r.InternalFlags = setFlag(r.InternalFlags, FlagHighPriority, enabled)
	if enabled {
		r.FlaggedAt = NowISO()
	} else {
		r.FlaggedAt = ""
	}
}

// ApplyCreateDefaults fills in the construction-time defaults for a freshly
// created report.
func (r *Intel) ApplyCreateDefaults() {
	if r.CreatedBy == "" {
		r.CreatedBy = "system"
	}
	r.LastUpdated = Today()
}

// Touch refreshes the last_updated date. Called on every mutation.
func (r *Intel) Touch() {
	r.LastUpdated = Today()
}
