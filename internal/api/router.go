package api

import (
	"net/http"

	"intel-archive/internal/auth"
	"intel-archive/internal/models"
	"intel-archive/internal/store"

	"github.com/gin-gonic/gin"
)

// RouterConfig holds the collaborators the API routes are wired with.
type RouterConfig struct {
	Store          store.Store
	Sessions       *auth.SessionService
	AllowedOrigins []string
}

// SetupRoutes configures all API routes. Every route's minimum clearance is
// declared here, next to the route, and enforced before the handler runs;
// listing handlers additionally filter record-by-record.
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	authHandler := NewAuthHandler(config.Store, config.Sessions)
	agentHandler := NewAgentHandler(config.Store)
	personHandler := NewPersonHandler(config.Store)
	intelHandler := NewIntelHandler(config.Store)
	priorityHandler := NewPriorityHandler(config.Store)

	router.Use(SecurityHeadersMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(config.AllowedOrigins))

	router.GET("/healthz", healthCheck)

	api := router.Group("/api")
	{
		// Authentication
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", RequireSession(config.Sessions), authHandler.Me)

		// Agent accounts: reads need TopSecret, mutations Redline.
		agents := api.Group("/agents")
		{
			agents.GET("", RequireClearance(config.Sessions, models.ClearanceTopSecret), agentHandler.List)
			agents.GET("/:id", RequireClearance(config.Sessions, models.ClearanceTopSecret), agentHandler.Get)
			agents.POST("", RequireClearance(config.Sessions, models.ClearanceRedline), agentHandler.Create)
			agents.PUT("/:id", RequireClearance(config.Sessions, models.ClearanceRedline), agentHandler.Update)
			agents.DELETE("/:id", RequireClearance(config.Sessions, models.ClearanceRedline), agentHandler.Delete)
		}

		// Person dossiers. Listing and search keep the legacy anonymous
		// empty-result behavior, so they take an optional session and gate
		// inside the handler.
		api.GET("/all", OptionalSession(config.Sessions), personHandler.List)
		api.POST("/search", OptionalSession(config.Sessions), personHandler.Search)
		api.POST("/create", RequireClearance(config.Sessions, models.ClearanceRedline), personHandler.Create)
		api.PUT("/update/:id", RequireClearance(config.Sessions, models.ClearanceRedline), personHandler.Update)
		api.DELETE("/delete/:id", RequireClearance(config.Sessions, models.ClearanceRedline), personHandler.Delete)

		// Intel reports
		intel := api.Group("/intel")
		intel.Use(RequireClearance(config.Sessions, models.ClearanceOperational))
		{
			intel.GET("", intelHandler.List)
			intel.GET("/:id", intelHandler.Get)
			intel.POST("", intelHandler.Create)
			intel.PUT("/:id", intelHandler.Update)
			intel.DELETE("/:id", intelHandler.Delete)
			intel.POST("/:id/priority", priorityHandler.FlagIntel)
		}

		// High-priority feed
		api.GET("/high-priority", RequireClearance(config.Sessions, models.ClearanceMinimal), priorityHandler.Feed)
		api.POST("/people/:id/priority", RequireClearance(config.Sessions, models.ClearanceRedline), priorityHandler.FlagPerson)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   models.NowISO(),
	})
}
