package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerNotificationRoutes accepts change notifications pushed by CLI
// processes sharing the same storage root. The server acknowledges them so
// the CLI never blocks; connected UI clients learn of the change on their
// next poll.
func (s *Server) registerNotificationRoutes(api *gin.RouterGroup) {
	events := []string{
		"ticket-created",
		"ticket-updated",
		"ticket-deleted",
		"sprint-created",
		"sprint-updated",
		"user-created",
	}
	for _, event := range events {
		api.POST("/cli-notifications/"+event, func(c *gin.Context) {
			var payload map[string]any
			if err := c.ShouldBindJSON(&payload); err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			s.logger.Debug("cli notification", "event", event, "id", payload["id"])
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	}
}
