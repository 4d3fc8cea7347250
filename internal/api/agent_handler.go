package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"intel-archive/internal/models"
	"intel-archive/internal/store"

	"github.com/gin-gonic/gin"
)

// AgentHandler handles agent account management. Reads are gated at
// TopSecret and mutations at Redline by the router.
type AgentHandler struct {
	store store.Store
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(st store.Store) *AgentHandler {
	return &AgentHandler{store: st}
}

// List returns every agent, passwords stripped.
func (h *AgentHandler) List(c *gin.Context) {
	agents, err := h.store.Agents()
	if err != nil {
		storageError(c, "Failed to load agents")
		return
	}
	public := make([]models.Agent, 0, len(agents))
	for _, agent := range agents {
		public = append(public, agent.Sanitized())
	}
	c.JSON(http.StatusOK, public)
}

// Get returns a single agent by id, passwords stripped.
func (h *AgentHandler) Get(c *gin.Context) {
	agents, err := h.store.Agents()
	if err != nil {
		storageError(c, "Failed to load agents")
		return
	}
	idx := store.FindAgent(agents, c.Param("id"))
	if idx < 0 {
		notFound(c, models.ErrAgentNotFound)
		return
	}
	c.JSON(http.StatusOK, agents[idx].Sanitized())
}

// Create registers a new agent. The id is taken from the payload when
// provided; otherwise the next numeric id is assigned. Unknown payload
// fields pass through to storage.
func (h *AgentHandler) Create(c *gin.Context) {
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	var missing []string
	for field, value := range map[string]string{
		"name":      agent.Name,
		"password":  agent.Password,
		"rank":      agent.Rank,
		"clearance": string(agent.Clearance),
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Missing fields: " + strings.Join(missing, ", "),
			Code:  "VALIDATION_FAILED",
		})
		return
	}

	agents, err := h.store.Agents()
	if err != nil {
		storageError(c, "Failed to load agents")
		return
	}

	if strings.TrimSpace(agent.ID) == "" {
		agent.ID = store.NextAgentID(agents)
	} else {
		agent.ID = strings.TrimSpace(agent.ID)
	}
	agent.Name = strings.TrimSpace(agent.Name)
	agent.Username = strings.TrimSpace(agent.Username)
	agent.ApplyCreateDefaults()

	agents = append(agents, agent)
	if err := h.store.SaveAgents(agents); err != nil {
		storageError(c, "Failed to save agents")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "created",
		"agent":   agent.Sanitized(),
	})
}

// Update merges the payload into an existing agent. The id and creation
// metadata are protected; lastActive is refreshed.
func (h *AgentHandler) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	agents, err := h.store.Agents()
	if err != nil {
		storageError(c, "Failed to load agents")
		return
	}
	idx := store.FindAgent(agents, c.Param("id"))
	if idx < 0 {
		notFound(c, models.ErrAgentNotFound)
		return
	}

	if err := models.MergePatch(&agents[idx], patch, "id", "createdAt", "createdBy"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid update payload",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}
	agents[idx].Touch()

	if err := h.store.SaveAgents(agents); err != nil {
		storageError(c, "Failed to save agents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "updated",
		"agent":   agents[idx].Sanitized(),
	})
}

// Delete removes an agent.
func (h *AgentHandler) Delete(c *gin.Context) {
	agents, err := h.store.Agents()
	if err != nil {
		storageError(c, "Failed to load agents")
		return
	}
	idx := store.FindAgent(agents, c.Param("id"))
	if idx < 0 {
		notFound(c, models.ErrAgentNotFound)
		return
	}

	deleted := agents[idx]
	agents = append(agents[:idx], agents[idx+1:]...)
	if err := h.store.SaveAgents(agents); err != nil {
		storageError(c, "Failed to save agents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "deleted",
		"agent":   deleted.Sanitized(),
	})
}

func storageError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: message,
		Code:  "STORAGE_FAILED",
	})
}

func notFound(c *gin.Context, err error) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: capitalizeError(err),
		Code:  "NOT_FOUND",
	})
}

func capitalizeError(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
