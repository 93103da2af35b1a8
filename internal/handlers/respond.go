package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamflow-app/teamflow/internal/flash"
	"github.com/teamflow-app/teamflow/internal/middleware"
	"github.com/teamflow-app/teamflow/internal/models"
)

// genericErrorMessage covers unexpected store failures; the request still
// ends in a redirect, never a crash.
const genericErrorMessage = "An error occurred."

// currentUser returns the acting user for the request. Only the ID is
// populated; the authorization rules decide on IDs alone.
func currentUser(c *gin.Context) (models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return models.User{}, false
	}
	return models.User{ID: userID}, true
}

// redirectWith queues a flash message and redirects to target.
func redirectWith(c *gin.Context, target, message string) {
	if message != "" {
		flash.Add(c, message)
	}
	c.Redirect(http.StatusFound, target)
}
