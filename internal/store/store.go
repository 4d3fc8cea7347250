// Package store is the durable keyed record store behind the archive API:
// three independent collections (agents, persons, intel) loaded and saved as
// whole snapshots. Concurrent writers race with last-write-wins semantics;
// the store guarantees atomicity per save, not coordination across requests.
package store

import (
	"strconv"
	"strings"

	"intel-archive/internal/models"
)

// Store exposes load-all/save-all access to the three collections. Handlers
// read a snapshot, modify it in memory and write the whole collection back.
type Store interface {
	Agents() ([]models.Agent, error)
	SaveAgents(agents []models.Agent) error

	People() ([]models.Person, error)
	SavePeople(people []models.Person) error

	Intel() ([]models.Intel, error)
	SaveIntel(items []models.Intel) error
}

// NormalizeID canonicalizes an id for comparison: "001", "1" and 1 all
// compare equal. Non-numeric ids are compared as trimmed strings.
func NormalizeID(id string) string {
	s := strings.TrimSpace(id)
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	return s
}

// FindAgent returns the index of the agent whose id matches, or -1.
func FindAgent(agents []models.Agent, id string) int {
	target := NormalizeID(id)
	for i, agent := range agents {
		if NormalizeID(agent.ID) == target {
			return i
		}
	}
	return -1
}

// FindPerson returns the index of the dossier whose id matches, or -1. The
// id may be given in any numeric-like form ("7", "007").
func FindPerson(people []models.Person, id string) int {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return -1
	}
	for i, person := range people {
		if person.ID == n {
			return i
		}
	}
	return -1
}

// FindIntel returns the index of the report whose id matches, or -1.
func FindIntel(items []models.Intel, id string) int {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return -1
	}
	for i, item := range items {
		if item.ID == n {
			return i
		}
	}
	return -1
}

// NextAgentID allocates the next agent id: one past the highest numeric id
// present, returned as a plain (unpadded) string.
func NextAgentID(agents []models.Agent) string {
	max := 0
	for _, agent := range agents {
		s := strings.TrimSpace(agent.ID)
		if n, err := strconv.Atoi(s); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// NextPersonID allocates the next dossier id. IDs are assigned once and
// never reused: always one past the highest id ever stored.
func NextPersonID(people []models.Person) int {
	max := 0
	for _, person := range people {
		if person.ID > max {
			max = person.ID
		}
	}
	return max + 1
}

// NextIntelID allocates the next report id.
func NextIntelID(items []models.Intel) int {
	max := 0
	for _, item := range items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}
