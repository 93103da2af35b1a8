package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/services"
	"github.com/teamflow-app/teamflow/internal/validation"
)

// TaskHandler coordinates the task web flow.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// AssignTask handles POST /projects/:id/tasks/create/.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		redirectWith(c, constants.PathProjects, "Error: Project does not exist.")
		return
	}
	projectPage := projectPath(projectID)

	_, err = h.taskService.AssignTask(projectID, user, services.AssignTaskInput{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Priority:      c.PostForm("priority"),
		DueDate:       c.PostForm("due_date"),
		AssigneeEmail: c.PostForm("assigned_to"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			redirectWith(c, constants.PathProjects, "Error: Project does not exist.")
		case errors.Is(err, services.ErrNotAllowed):
			redirectWith(c, constants.PathHome, "Not allowed")
		case errors.Is(err, validation.ErrMissingFields):
			redirectWith(c, projectPage, "Error: Missing field")
		case errors.Is(err, validation.ErrInvalidDateFormat):
			redirectWith(c, projectPage, "Invalid date format.")
		case errors.Is(err, validation.ErrDueDateOutOfRange):
			redirectWith(c, projectPage, "Error: Due date out of range")
		case errors.Is(err, services.ErrUserNotFound):
			redirectWith(c, projectPage, "User not found.")
		case errors.Is(err, services.ErrNotProjectMember):
			redirectWith(c, projectPage, "Error: User is not in the project")
		default:
			logrus.WithError(err).Error("failed to create task")
			redirectWith(c, projectPage, genericErrorMessage)
		}
		return
	}

	redirectWith(c, projectPage, "Task created successfully!")
}

// ChangeTaskStatus handles POST /tasks/update/:task_id.
func (h *TaskHandler) ChangeTaskStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		redirectWith(c, constants.PathHome, "Task does not exist")
		return
	}

	if _, err := h.taskService.ChangeTaskStatus(taskID, user, c.PostForm("status")); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			redirectWith(c, constants.PathHome, "Task does not exist")
		case errors.Is(err, services.ErrNotTaskAssignee):
			redirectWith(c, constants.PathHome, "You don't own the task")
		case errors.Is(err, services.ErrInvalidStatus):
			redirectWith(c, constants.PathHome, "Invalid status.")
		default:
			logrus.WithError(err).Error("failed to update task status")
			redirectWith(c, constants.PathHome, genericErrorMessage)
		}
		return
	}

	c.Redirect(http.StatusFound, constants.PathHome)
}
