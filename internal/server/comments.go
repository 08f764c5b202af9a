package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tkxr/tkxr/internal/domain"
)

type createCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (s *Server) handleListComments(c *gin.Context) {
	ticketID := c.Param("id")

	comments, err := s.service.GetComments(c.Request.Context(), ticketID)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) handleCreateComment(c *gin.Context) {
	ticketID := c.Param("id")

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	comment, err := s.service.CreateComment(c.Request.Context(), ticketID, req.Author, strings.TrimSpace(req.Content))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	id := c.Param("id")

	deleted, err := s.service.DeleteComment(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		respondNotFound(c, "comment not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
