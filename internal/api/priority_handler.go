package api

import (
	"net/http"
	"sort"

	"intel-archive/internal/auth"
	"intel-archive/internal/models"
	"intel-archive/internal/store"

	"github.com/gin-gonic/gin"
)

// PriorityHandler handles the High Priority flag and the cross-collection
// feed of flagged records.
type PriorityHandler struct {
	store store.Store
}

// NewPriorityHandler creates a new priority handler.
func NewPriorityHandler(st store.Store) *PriorityHandler {
	return &PriorityHandler{store: st}
}

// PriorityRequest toggles the High Priority flag. Enabled defaults to true
// when the body is empty.
type PriorityRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r PriorityRequest) enabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Feed merges flagged dossiers and reports the caller may view into a single
// list, most recently flagged first. Records the caller cannot view are
// silently absent, exactly as in the per-collection listings.
func (h *PriorityHandler) Feed(c *gin.Context) {
	session := CurrentSession(c)

	people, err := h.store.People()
	if err != nil {
		storageError(c, "Failed to load people")
		return
	}
	items, err := h.store.Intel()
	if err != nil {
		storageError(c, "Failed to load intel")
		return
	}

	feed := make([]FeedItem, 0)
	for _, person := range people {
		if person.HasFlag(models.FlagHighPriority) && auth.CanView(session, person) {
			feed = append(feed, FeedItem{Type: "person", FlaggedAt: person.FlaggedAt, Record: person})
		}
	}
	for _, item := range items {
		if item.HasFlag(models.FlagHighPriority) && auth.CanView(session, item) {
			feed = append(feed, FeedItem{Type: "intel", FlaggedAt: item.FlaggedAt, Record: item})
		}
	}

	// RFC3339 timestamps sort chronologically as strings; records missing a
	// flagged_at stamp go last.
	sort.SliceStable(feed, func(i, j int) bool {
		if feed[i].FlaggedAt == "" || feed[j].FlaggedAt == "" {
			return feed[j].FlaggedAt == "" && feed[i].FlaggedAt != ""
		}
		return feed[i].FlaggedAt > feed[j].FlaggedAt
	})

	c.JSON(http.StatusOK, ResultsResponse{Results: feed})
}

// FlagPerson sets or clears the High Priority flag on a dossier.
func (h *PriorityHandler) FlagPerson(c *gin.Context) {
	req, ok := bindPriorityRequest(c)
	if !ok {
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

	people[idx].SetHighPriority(req.enabled())
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

// FlagIntel sets or clears the High Priority flag on a report.
func (h *PriorityHandler) FlagIntel(c *gin.Context) {
	req, ok := bindPriorityRequest(c)
	if !ok {
		return
	}

	items, err := h.store.Intel()
	if err != nil {
		storageError(c, "Failed to load intel")
		return
	}
	idx := store.FindIntel(items, c.Param("id"))
	if idx < 0 {
		notFound(c, models.ErrIntelNotFound)
		return
	}

	items[idx].SetHighPriority(req.enabled())
	items[idx].Touch()

	if err := h.store.SaveIntel(items); err != nil {
		storageError(c, "Failed to save intel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": items[idx]})
}

func bindPriorityRequest(c *gin.Context) (PriorityRequest, bool) {
	var req PriorityRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request body",
				Message: err.Error(),
				Code:    "VALIDATION_FAILED",
			})
			return req, false
		}
	}
	return req, true
}
