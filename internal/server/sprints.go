package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

type createSprintRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Goal        string     `json:"goal"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (s *Server) handleListSprints(c *gin.Context) {
	sprints, err := s.service.GetSprints(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, sprints)
}

func (s *Server) handleCreateSprint(c *gin.Context) {
	var req createSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	sprint, err := s.service.CreateSprint(c.Request.Context(), tracker.CreateSprintRequest{
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, sprint)
}

func (s *Server) handleUpdateSprintStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	sprint, err := s.service.UpdateSprintStatus(c.Request.Context(), id, domain.SprintStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if sprint == nil {
		respondNotFound(c, "sprint not found")
		return
	}
	c.JSON(http.StatusOK, sprint)
}

func (s *Server) handleDeleteSprint(c *gin.Context) {
	id := c.Param("id")

	deleted, err := s.service.DeleteEntity(c.Request.Context(), string(domain.KindSprints), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		respondNotFound(c, "sprint not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListArchivedSprints(c *gin.Context) {
	ids, err := s.service.GetArchivedSprints(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (s *Server) handleGetArchive(c *gin.Context) {
	id := c.Param("id")

	archive, err := s.service.GetArchive(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if archive == nil {
		respondNotFound(c, "archive not found")
		return
	}
	c.JSON(http.StatusOK, archive)
}
