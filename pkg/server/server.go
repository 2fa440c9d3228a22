// Package server exposes tree generation and kinship inference over
// HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/kinship/pkg/config"
	"github.com/soundprediction/kinship/pkg/server/handlers"
)

// Server represents the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
}

// New creates a new server instance.
func New(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// Setup sets up the server routes and middleware.
func (s *Server) Setup() {
	gin.SetMode(s.config.Server.Mode)

	s.router = gin.New()
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler()
	generateHandler := handlers.NewGenerateHandler()
	relationsHandler := handlers.NewRelationsHandler()

	s.router.GET("/health", healthHandler.HealthCheck)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/trees", generateHandler.Generate)
		v1.POST("/relations", relationsHandler.Infer)
	}
}

// Start starts the server.
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
