package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/dto"
	"github.com/teamflow-app/teamflow/internal/flash"
	"github.com/teamflow-app/teamflow/internal/middleware"
	"github.com/teamflow-app/teamflow/internal/services"
	"github.com/teamflow-app/teamflow/internal/validation"
)

// ProjectHandler coordinates the project web flow.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Home serves GET /: the user's projects, each with the tasks they may see.
func (h *ProjectHandler) Home(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	projects, err := h.projectService.ListHomeProjects(user)
	if err != nil {
		logrus.WithError(err).Error("failed to load home projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	items := make([]gin.H, len(projects))
	for i, pt := range projects {
		items[i] = gin.H{
			"project": dto.ToProjectDTO(pt.Project),
			"tasks":   dto.ToTaskDTOs(pt.Tasks),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": items,
		"messages": flash.Take(c),
	})
}

// ProjectsPage serves GET /projects/: the user's created-or-member projects.
func (h *ProjectHandler) ProjectsPage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	projects, err := h.projectService.ListProjectsForUser(user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to list projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"messages": flash.Take(c),
	})
}

// CreateProjectPage serves GET /projects/create/.
func (h *ProjectHandler) CreateProjectPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": flash.Take(c)})
}

// CreateProject handles POST /projects/create/.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	_, err := h.projectService.CreateProject(user, services.CreateProjectInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		StartDate:   c.PostForm("start_date"),
		DueDate:     c.PostForm("due_date"),
	})
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrMissingFields):
			redirectWith(c, constants.PathCreateProject, "Missing fields.")
		case errors.Is(err, validation.ErrInvalidDateFormat):
			redirectWith(c, constants.PathCreateProject, "Invalid date format.")
		case errors.Is(err, validation.ErrStartDateInPast):
			redirectWith(c, constants.PathCreateProject, "Start date cannot be in the past.")
		case errors.Is(err, validation.ErrDueDateNotAfterStart):
			redirectWith(c, constants.PathCreateProject, "Due date must be after the start date.")
		default:
			logrus.WithError(err).Error("failed to create project")
			redirectWith(c, constants.PathCreateProject, genericErrorMessage)
		}
		return
	}

	redirectWith(c, constants.PathProjects, "Project created successfully!")
}

// ProjectDetail serves GET /projects/:id/. RequireProjectMember has already
// loaded the project and verified membership.
func (h *ProjectHandler) ProjectDetail(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		redirectWith(c, constants.PathHome, "Project not found.")
		return
	}

	members, err := h.projectService.ListMemberTasks(project)
	if err != nil {
		logrus.WithError(err).Error("failed to load project members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	memberItems := make([]gin.H, len(members))
	for i, mt := range members {
		memberItems[i] = gin.H{
			"member": dto.ToUserDTO(mt.Member),
			"tasks":  dto.ToTaskDTOs(mt.Tasks),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"project":  dto.ToProjectDTO(project),
		"members":  memberItems,
		"messages": flash.Take(c),
	})
}

// DeleteProject handles POST /projects/:id/delete/.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		redirectWith(c, constants.PathHome, "Error: Project not found")
		return
	}

	if err := h.projectService.DeleteProject(projectID, user); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			redirectWith(c, constants.PathHome, "Error: Project not found")
		case errors.Is(err, services.ErrNotAllowed):
			redirectWith(c, constants.PathHome, "Not allowed")
		default:
			logrus.WithError(err).Error("failed to delete project")
			redirectWith(c, constants.PathHome, genericErrorMessage)
		}
		return
	}

	redirectWith(c, constants.PathProjects, "Project Deleted")
}

// AddMember handles POST /projects/:id/members/add/:email.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		redirectWith(c, constants.PathHome, "Project not found.")
		return
	}
	projectPage := projectPath(projectID)

	if err := h.projectService.AddMember(projectID, user, c.Param("email")); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			redirectWith(c, constants.PathHome, "Project not found.")
		case errors.Is(err, services.ErrNotAllowed):
			redirectWith(c, constants.PathHome, "Not allowed.")
		case errors.Is(err, services.ErrUserNotFound):
			redirectWith(c, projectPage, "User not found.")
		case errors.Is(err, services.ErrAlreadyMember):
			redirectWith(c, projectPage, "Member already added.")
		default:
			logrus.WithError(err).Error("failed to add member")
			redirectWith(c, projectPage, genericErrorMessage)
		}
		return
	}

	redirectWith(c, projectPage, "Member added.")
}

// RemoveMember handles POST /projects/:id/members/remove/:member_id.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		redirectWith(c, constants.PathHome, "Project not found.")
		return
	}
	projectPage := projectPath(projectID)

	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil {
		redirectWith(c, projectPage, "User not found.")
		return
	}

	if err := h.projectService.RemoveMember(projectID, user, memberID); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			redirectWith(c, constants.PathHome, "Project not found.")
		case errors.Is(err, services.ErrUserNotFound):
			redirectWith(c, projectPage, "User not found.")
		case errors.Is(err, services.ErrNotAllowed):
			redirectWith(c, projectPage, "Not Allowed")
		case errors.Is(err, services.ErrCannotRemoveCreator):
			redirectWith(c, projectPage, "Can't remove the creator of the project")
		case errors.Is(err, services.ErrMemberHasUnfinishedTasks):
			redirectWith(c, projectPage, "Cannot remove member: they have unfinished tasks.")
		default:
			logrus.WithError(err).Error("failed to remove member")
			redirectWith(c, projectPage, genericErrorMessage)
		}
		return
	}

	redirectWith(c, projectPage, "Member removed successfully.")
}

func projectPath(projectID uint64) string {
	return fmt.Sprintf("/projects/%d/", projectID)
}
