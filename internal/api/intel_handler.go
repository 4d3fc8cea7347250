package api

import (
	"encoding/json"
	"net/http"

	"intel-archive/internal/auth"
	"intel-archive/internal/models"
	"intel-archive/internal/store"

	"github.com/gin-gonic/gin"
)

// IntelHandler handles the intel-report collection. All routes are gated at
// Operational by the router.
type IntelHandler struct {
	store store.Store
}

// NewIntelHandler creates a new intel handler.
func NewIntelHandler(st store.Store) *IntelHandler {
	return &IntelHandler{store: st}
}

// List returns the reports visible to the caller.
func (h *IntelHandler) List(c *gin.Context) {
	items, err := h.store.Intel()
	if err != nil {
		storageError(c, "Failed to load intel")
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{Results: auth.FilterVisible(CurrentSession(c), items)})
}

// Get returns a single report. A caller whose clearance does not reach the
// report's classification gets an explicit denial, not a 404: they asked for
// a specific id and deserve to know the request was denied.
func (h *IntelHandler) Get(c *gin.Context) {
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
	if !auth.CanView(CurrentSession(c), items[idx]) {
		abortInsufficientClearance(c)
		return
	}
	c.JSON(http.StatusOK, items[idx])
}

// Create adds a report, allocating the next id unless the client supplies
// its own, which must not collide.
func (h *IntelHandler) Create(c *gin.Context) {
	var item models.Intel
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	items, err := h.store.Intel()
	if err != nil {
		storageError(c, "Failed to load intel")
		return
	}

	if item.ID == 0 {
		item.ID = store.NextIntelID(items)
	} else {
		for _, existing := range items {
			if existing.ID == item.ID {
				c.JSON(http.StatusConflict, ErrorResponse{
					Error: "An intel entry with this ID already exists",
					Code:  "DUPLICATE_ID",
				})
				return
			}
		}
	}
	item.ApplyCreateDefaults()

	items = append(items, item)
	if err := h.store.SaveIntel(items); err != nil {
		storageError(c, "Failed to save intel")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": item})
}

// Update merges the payload into an existing report, refreshing
// last_updated. The id never changes.
func (h *IntelHandler) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
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

	if err := models.MergePatch(&items[idx], patch, "id"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid update payload",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}
	items[idx].Touch()

	if err := h.store.SaveIntel(items); err != nil {
		storageError(c, "Failed to save intel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": items[idx]})
}

// Delete removes a report.
func (h *IntelHandler) Delete(c *gin.Context) {
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

	deleted := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := h.store.SaveIntel(items); err != nil {
		storageError(c, "Failed to save intel")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "deleted",
		"intel":   deleted,
	})
}
