package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

type createUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.service.GetUsers(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := s.service.CreateUser(c.Request.Context(), tracker.CreateUserRequest{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id := c.Param("id")

	deleted, err := s.service.DeleteEntity(c.Request.Context(), string(domain.KindUsers), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		respondNotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
