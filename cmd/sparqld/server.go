package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/semtools/sparqld/internal/config"
	"codeberg.org/semtools/sparqld/internal/llm"
	"codeberg.org/semtools/sparqld/internal/logger"
	"codeberg.org/semtools/sparqld/internal/store"
)

// holds all dependencies and state for the endpoint server
type server struct {
	config   *config.Config
	store    *store.Store
	registry *llm.Registry
	router   *gin.Engine
}

// creates and configures a server instance with all dependencies
func newServer(cfg *config.Config, st *store.Store) *server {
	registry := llm.NewRegistry(cfg.AI)

	if registry.Enabled() {
		logger.Info("AI assistant enabled",
			"providers", registry.Available(),
			"default_provider", registry.Default(),
		)
	} else {
		logger.Info("AI assistant disabled (no API keys configured)")
	}

	router := gin.Default()

	srv := &server{
		config:   cfg,
		store:    st,
		registry: registry,
		router:   router,
	}

	registerRoutes(router, srv)

	return srv
}

// run starts the HTTP server and blocks until an interrupt signal,
// then drains in-flight requests.
func (s *server) run() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// assistant responses can take as long as the vendor timeout
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		logger.Info("YASGUI interface available", "url", "http://"+addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server stopped")

	return nil
}
