package models

import "encoding/json"

// Agent represents a user account in the archive. The password is stored and
// compared in the clear: this service reproduces the contract of a
// training/demo deployment and must not be pointed at real credentials.
type Agent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Password   string    `json:"password,omitempty"`
	Rank       string    `json:"rank"`
	Clearance  Clearance `json:"clearance"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  string    `json:"createdAt,omitempty"`
	LastActive string    `json:"lastActive,omitempty"`

	// Extra carries fields this service does not model (badge numbers, call
	// signs, duty state and the like) through load/save and updates.
	Extra map[string]any `json:"-"`
}

var agentKnownKeys = []string{
	"id", "name", "username", "password", "rank", "clearance",
	"createdBy", "createdAt", "lastActive",
}

func (a *Agent) UnmarshalJSON(data []byte) error {
	type alias Agent
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := decodeExtra(data, agentKnownKeys)
	if err != nil {
		return err
	}
	decoded.Extra = extra
	*a = Agent(decoded)
	return nil
}

func (a Agent) MarshalJSON() ([]byte, error) {
	type alias Agent
	return encodeWithExtra(alias(a), a.Extra)
}

// Sanitized returns a copy of the agent safe to return to clients, with the
// password removed.
func (a Agent) Sanitized() Agent {
	a.Password = ""
	return a
}

// ApplyCreateDefaults fills in the construction-time defaults for a freshly
// created agent. Defaults are applied once here, not re-derived per handler.
func (a *Agent) ApplyCreateDefaults() {
	if a.CreatedBy == "" {
		a.CreatedBy = "system"
	}
	a.CreatedAt = Today()
	a.LastActive = NowISO()
}

// Touch refreshes the agent's lastActive timestamp. Called on login and on
// every update.
func (a *Agent) Touch() {
	a.LastActive = NowISO()
}
