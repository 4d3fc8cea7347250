package api

import (
	"errors"
	"net/http"

	"intel-archive/internal/auth"
	"intel-archive/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "session"

// RequireSession creates middleware that demands a valid session at any
// clearance level.
func RequireSession(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.SessionFromRequest(c.Request)
		if err != nil || session == nil {
			abortUnauthenticated(c, err)
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireClearance creates middleware that demands a valid session at or
// above the given clearance. It runs before the handler body, so denied
// requests never touch storage.
func RequireClearance(sessions *auth.SessionService, minLevel models.Clearance) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, verifyErr := sessions.SessionFromRequest(c.Request)
		if verifyErr != nil {
			session = nil
		}
		gated, err := auth.RequireClearance(session, minLevel)
		if err != nil {
			if errors.Is(err, models.ErrNotAuthenticated) {
				abortUnauthenticated(c, verifyErr)
				return
			}
			abortInsufficientClearance(c)
			return
		}
		c.Set(sessionContextKey, gated)
		c.Next()
	}
}

// OptionalSession creates middleware that attaches a session when a valid
// one is presented and otherwise continues anonymously. The legacy listing
// endpoints use it: they answer with an empty result set instead of a denial
// when unauthenticated.
func OptionalSession(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.SessionFromRequest(c.Request)
		if err == nil && session != nil {
			c.Set(sessionContextKey, session)
		}
		c.Next()
	}
}

// CurrentSession returns the verified session attached to the request, or
// nil for an anonymous request.
func CurrentSession(c *gin.Context) *auth.Session {
	if value, exists := c.Get(sessionContextKey); exists {
		if session, ok := value.(*auth.Session); ok {
			return session
		}
	}
	return nil
}

func abortUnauthenticated(c *gin.Context, verifyErr error) {
	response := ErrorResponse{Error: "Not authenticated", Code: "NOT_AUTHENTICATED"}
	switch {
	case errors.Is(verifyErr, models.ErrSessionExpired):
		response = ErrorResponse{Error: "Session expired", Code: "SESSION_EXPIRED"}
	case errors.Is(verifyErr, models.ErrSessionInvalid):
		response = ErrorResponse{Error: "Invalid session", Code: "INVALID_SESSION"}
	}
	c.JSON(http.StatusUnauthorized, response)
	c.Abort()
}

func abortInsufficientClearance(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorResponse{
		Error: "Insufficient clearance",
		Code:  "INSUFFICIENT_CLEARANCE",
	})
	c.Abort()
}

// RequestIDMiddleware tags every request with a unique id, honoring one
// supplied by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CORSMiddleware handles cross-origin requests for the configured origins.
// Credentials are allowed, so a wildcard origin is never emitted.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowedOrigin := ""
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				allowedOrigin = origin
				break
			}
		}

		if allowedOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowedOrigin)
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityHeadersMiddleware adds standard security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
