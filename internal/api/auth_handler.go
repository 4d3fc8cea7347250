package api

import (
	"net/http"
	"strings"

	"intel-archive/internal/auth"
	"intel-archive/internal/models"
	"intel-archive/internal/store"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	store    store.Store
	sessions *auth.SessionService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(st store.Store, sessions *auth.SessionService) *AuthHandler {
	return &AuthHandler{store: st, sessions: sessions}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an agent by username (case-insensitive) and exact
// password match, refreshes lastActive and issues a session token both as an
// HTTP-only cookie and in the response body for non-browser callers.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Username and password are required",
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
		return
	}

	agents, err := h.store.Agents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to load agents",
			Code:  "STORAGE_FAILED",
		})
		return
	}

	username := strings.TrimSpace(req.Username)
	for i := range agents {
		agent := &agents[i]
		if !strings.EqualFold(strings.TrimSpace(agent.Username), username) {
			continue
		}
		if agent.Password != req.Password {
			continue
		}

		agent.Touch()
		if err := h.store.SaveAgents(agents); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to save agents",
				Code:  "STORAGE_FAILED",
			})
			return
		}

		token, err := h.sessions.Issue(agent.ID, agent.Username, agent.Clearance)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to issue session",
				Code:  "SESSION_ISSUE_FAILED",
			})
			return
		}

		setSessionCookie(c, token, int(auth.SessionTTL.Seconds()))
		c.JSON(http.StatusOK, gin.H{
			"user":  agent.Sanitized(),
			"token": token,
		})
		return
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error: capitalizeError(models.ErrInvalidCredentials),
		Code:  "INVALID_CREDENTIALS",
	})
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the calling session's identity and, when the agent record still
// exists, its sanitized profile.
func (h *AuthHandler) Me(c *gin.Context) {
	session := CurrentSession(c)

	response := gin.H{
		"session": gin.H{
			"agent_id":   session.AgentID,
			"username":   session.Username,
			"clearance":  session.Clearance,
			"issued_at":  session.IssuedAt,
			"expires_at": session.ExpiresAt,
		},
	}

	agents, err := h.store.Agents()
	if err == nil {
		if idx := store.FindAgent(agents, session.AgentID); idx >= 0 {
			response["user"] = agents[idx].Sanitized()
		}
	}

	c.JSON(http.StatusOK, response)
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, maxAge, "/", "", false, true)
}
