package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intel-archive/internal/api"
	"intel-archive/internal/auth"
	"intel-archive/internal/config"
	"intel-archive/internal/store"
	"intel-archive/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server with its wired collaborators.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	logger   logger.Logger
	store    store.Store
	sessions *auth.SessionService
}

// New creates a new server instance: file store, session service, router.
func New(cfg *config.Config) (*Server, error) {
	log := logger.New(cfg.Logging)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	fileStore, err := store.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	sessions := auth.NewSessionService(
		cfg.Security.SessionSecret,
		time.Duration(cfg.Security.SessionTTL)*time.Hour,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))

	api.SetupRoutes(router, &api.RouterConfig{
		Store:          fileStore,
		Sessions:       sessions,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	return &Server{
		config:   cfg,
		router:   router,
		logger:   log,
		store:    fileStore,
		sessions: sessions,
	}, nil
}

// Start starts the HTTP server and blocks until an interrupt, then shuts
// down gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		s.logger.Info("Starting server", map[string]interface{}{
			"host":     s.config.Server.Host,
			"port":     s.config.Server.Port,
			"data_dir": s.config.Storage.DataDir,
		})

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", err, nil)
		return err
	}

	s.logger.Info("Server exited", nil)
	return nil
}
