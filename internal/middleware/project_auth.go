package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamflow-app/teamflow/internal/authz"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/database"
	"github.com/teamflow-app/teamflow/internal/flash"
	"github.com/teamflow-app/teamflow/internal/models"
)

// ContextKeyProject is where RequireProjectMember stores the loaded project.
const ContextKeyProject = "project"

// RequireProjectMember loads the project from the :id route parameter and
// checks that the current user is one of its members. Failures redirect home
// with a flash message, matching the web flow's error contract.
func RequireProjectMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			flash.Add(c, "Project not found.")
			c.Redirect(http.StatusFound, constants.PathHome)
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.Redirect(http.StatusFound, constants.PathLogin)
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().Preload("Members").First(&project, projectID).Error; err != nil {
			flash.Add(c, "Project not found.")
			c.Redirect(http.StatusFound, constants.PathHome)
			c.Abort()
			return
		}

		if !authz.CanViewProject(models.User{ID: userID}, project) {
			flash.Add(c, "Not allowed.")
			c.Redirect(http.StatusFound, constants.PathHome)
			c.Abort()
			return
		}

		c.Set(ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the project stored by RequireProjectMember.
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}
