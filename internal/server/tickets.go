package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

type createTicketRequest struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Assignee    string   `json:"assignee"`
	Sprint      string   `json:"sprint"`
	Estimate    float64  `json:"estimate"`
	Labels      []string `json:"labels"`
	Priority    string   `json:"priority"`
}

type updateTicketRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Assignee    *string  `json:"assignee"`
	Sprint      *string  `json:"sprint"`
	Estimate    *float64 `json:"estimate"`
	Labels      []string `json:"labels"`
	Priority    *string  `json:"priority"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// handleListTickets returns every active ticket.
func (s *Server) handleListTickets(c *gin.Context) {
	tickets, err := s.service.GetAllTickets(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// handleListTicketsByType returns active tickets of one type. The path
// parameter is named id for routing reasons but carries a ticket type.
func (s *Server) handleListTicketsByType(c *gin.Context) {
	ticketType := domain.TicketType(c.Param("id"))

	tickets, err := s.service.GetTicketsByType(c.Request.Context(), ticketType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (s *Server) handleCreateTicket(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ticket, err := s.service.CreateTicket(c.Request.Context(), tracker.CreateTicketRequest{
		Type:        domain.TicketType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Sprint:      req.Sprint,
		Estimate:    req.Estimate,
		Labels:      req.Labels,
		Priority:    domain.Priority(req.Priority),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (s *Server) handleUpdateTicket(c *gin.Context) {
	id := c.Param("id")

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	update := tracker.UpdateTicketRequest{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Sprint:      req.Sprint,
		Estimate:    req.Estimate,
		Labels:      req.Labels,
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		update.Priority = &priority
	}

	ticket, err := s.service.UpdateTicket(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if ticket == nil {
		respondNotFound(c, "ticket not found")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) handleUpdateTicketStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ticket, err := s.service.UpdateTicketStatus(c.Request.Context(), id, domain.TicketStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if ticket == nil {
		respondNotFound(c, "ticket not found")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) handleDeleteTicket(c *gin.Context) {
	id := c.Param("id")

	deleted, _, err := s.service.DeleteTicketCascade(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		respondNotFound(c, "ticket not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
