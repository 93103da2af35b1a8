package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/teamflow-app/teamflow/internal/dto"
	apierrors "github.com/teamflow-app/teamflow/internal/errors"
	"github.com/teamflow-app/teamflow/internal/middleware"
	"github.com/teamflow-app/teamflow/internal/models"
	"github.com/teamflow-app/teamflow/internal/repository"
	"gorm.io/gorm"
)

// APIHandler serves the read-only JSON API.
type APIHandler struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) *APIHandler {
	return &APIHandler{
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// ListUsers returns all users. GET /api/users/
func (h *APIHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List()
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// ListProjects returns all projects. GET /api/projects/
func (h *APIHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectRepo.List()
	if err != nil {
		logrus.WithError(err).Error("failed to list projects")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// ListUserProjects returns the distinct projects the caller created or is a
// member of. GET /api/projects/user/
func (h *APIHandler) ListUserProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectRepo.ListForUser(userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list user projects")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns a single project. GET /api/projects/:id/
func (h *APIHandler) GetProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	project, err := h.projectRepo.FindByID(projectID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		logrus.WithError(err).Error("failed to find project")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// ListProjectMembers returns the members of a project as user objects. A
// missing project yields an empty list, matching the original API.
// GET /api/project/:id/users/
func (h *APIHandler) ListProjectMembers(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, []dto.UserDTO{})
		return
	}

	if _, err := h.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, []dto.UserDTO{})
			return
		}
		logrus.WithError(err).Error("failed to find project")
		apierrors.InternalError(c, "")
		return
	}

	members, err := h.projectRepo.ListMembers(projectID)
	if err != nil {
		logrus.WithError(err).Error("failed to list project members")
		apierrors.InternalError(c, "")
		return
	}

	if members == nil {
		members = []models.User{}
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(members))
}
