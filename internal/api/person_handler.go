package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"intel-archive/internal/auth"
	"intel-archive/internal/models"
	"intel-archive/internal/store"

	"github.com/gin-gonic/gin"
)

// PersonHandler handles the person-dossier collection. Mutations are gated
// at Redline by the router; listing and search run behind an optional
// session (see List for the legacy anonymous behavior).
type PersonHandler struct {
	store store.Store
}

// NewPersonHandler creates a new person handler.
func NewPersonHandler(st store.Store) *PersonHandler {
	return &PersonHandler{store: st}
}

// SearchRequest represents a free-text search request.
type SearchRequest struct {
	Query string `json:"query"`
}

// List returns the dossiers visible to the caller. An unauthenticated caller
// gets an empty result set with a 200 rather than a denial; existing clients
// depend on that and must treat it as "no visible records", not "no records
// exist". Every other gated route returns 401/403 uniformly.
func (h *PersonHandler) List(c *gin.Context) {
	session := CurrentSession(c)
	if session == nil {
		c.JSON(http.StatusOK, ResultsResponse{Results: []models.Person{}})
		return
	}
	if _, err := auth.RequireClearance(session, models.ClearanceMinimal); err != nil {
		abortInsufficientClearance(c)
		return
	}

	people, err := h.store.People()
	if err != nil {
		storageError(c, "Failed to load people")
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{Results: auth.FilterVisible(session, people)})
}

// Search matches dossiers against a free-text query, then filters the
// matches through the record-level visibility gate. An empty query and an
// unauthenticated caller both yield an empty result set.
func (h *PersonHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	query := strings.TrimSpace(req.Query)
	session := CurrentSession(c)
	if query == "" || session == nil {
		c.JSON(http.StatusOK, ResultsResponse{Results: []models.Person{}})
		return
	}
	if _, err := auth.RequireClearance(session, models.ClearanceMinimal); err != nil {
		abortInsufficientClearance(c)
		return
	}

	people, err := h.store.People()
	if err != nil {
		storageError(c, "Failed to load people")
		return
	}

	matches := make([]models.Person, 0)
	for _, person := range people {
		if person.MatchesQuery(query) {
			matches = append(matches, person)
		}
	}
	c.JSON(http.StatusOK, ResultsResponse{Results: auth.FilterVisible(session, matches)})
}

// Create adds a dossier. The id is allocated as one past the highest id ever
// stored unless the client supplies its own, which must not collide.
func (h *PersonHandler) Create(c *gin.Context) {
	var person models.Person
	if err := c.ShouldBindJSON(&person); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	people, err := h.store.People()
	if err != nil {
		storageError(c, "Failed to load people")
		return
	}

	if person.ID == 0 {
		person.ID = store.NextPersonID(people)
	} else {
		for _, existing := range people {
			if existing.ID == person.ID {
				c.JSON(http.StatusConflict, ErrorResponse{
					Error: "A person with this ID already exists",
					Code:  "DUPLICATE_ID",
				})
				return
			}
		}
	}
	person.ApplyCreateDefaults()

	people = append(people, person)
	if err := h.store.SavePeople(people); err != nil {
		storageError(c, "Failed to save people")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "created",
		"person":  person,
	})
}

// Update merges the payload into an existing dossier. The id is assigned
// once at creation and never changes; last_updated is refreshed.
func (h *PersonHandler) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	people, err := h.store.People()
	if err != nil {
		storageError(c, "Failed to load people")
		return
	}
	idx := store.FindPerson(people, c.Param("id"))
	if idx < 0 {
		notFound(c, models.ErrPersonNotFound)
		return
	}

	if err := models.MergePatch(&people[idx], patch, "id"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid update payload",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}
	people[idx].Touch()

	if err := h.store.SavePeople(people); err != nil {
		storageError(c, "Failed to save people")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "updated",
		"person":  people[idx],
	})
}

// Delete removes a dossier.
func (h *PersonHandler) Delete(c *gin.Context) {
	people, err := h.store.People()
	if err != nil {
		storageError(c, "Failed to load people")
		return
	}
	idx := store.FindPerson(people, c.Param("id"))
	if idx < 0 {
		notFound(c, models.ErrPersonNotFound)
		return
	}

	deleted := people[idx]
	people = append(people[:idx], people[idx+1:]...)
	if err := h.store.SavePeople(people); err != nil {
		storageError(c, "Failed to save people")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "deleted",
		"person":  deleted,
	})
}
