// Package server exposes the tracker facade over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkxr/tkxr/internal/tracker"
)

// Server provides HTTP handlers for the tracker backend.
type Server struct {
	engine  *gin.Engine
	service *tracker.Service
	logger  *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(service *tracker.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{
		engine:  router,
		service: service,
		logger:  logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		tickets := api.Group("/tickets")
		{
			tickets.GET("", s.handleListTickets)
			tickets.POST("", s.handleCreateTicket)
			// Gin requires one wildcard name per position; :id doubles
			// as a ticket type on the list route.
			tickets.GET(":id", s.handleListTicketsByType)
			tickets.PUT(":id", s.handleUpdateTicket)
			tickets.DELETE(":id", s.handleDeleteTicket)
			tickets.PUT(":id/status", s.handleUpdateTicketStatus)
			tickets.GET(":id/comments", s.handleListComments)
			tickets.POST(":id/comments", s.handleCreateComment)
		}

		sprints := api.Group("/sprints")
		{
			sprints.GET("", s.handleListSprints)
			sprints.POST("", s.handleCreateSprint)
			sprints.DELETE(":id", s.handleDeleteSprint)
			sprints.PUT(":id/status", s.handleUpdateSprintStatus)
			sprints.GET("/archived", s.handleListArchivedSprints)
			sprints.GET("/archived/:id", s.handleGetArchive)
		}

		users := api.Group("/users")
		{
			users.GET("", s.handleListUsers)
			users.POST("", s.handleCreateUser)
			users.DELETE(":id", s.handleDeleteUser)
		}

		api.DELETE("/comments/:id", s.handleDeleteComment)

		s.registerNotificationRoutes(api)
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondNotFound reports an absent entity without logging it as a failure.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}
