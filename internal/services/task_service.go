package services

import (
	"errors"
	"fmt"

	"github.com/teamflow-app/teamflow/internal/authz"
	"github.com/teamflow-app/teamflow/internal/models"
	"github.com/teamflow-app/teamflow/internal/repository"
	"github.com/teamflow-app/teamflow/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotTaskAssignee  = errors.New("only the assignee can change the task status")
	ErrNotProjectMember = errors.New("user is not in the project")
	ErrInvalidStatus    = errors.New("invalid task status")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// AssignTaskInput represents the raw form input for creating a task.
type AssignTaskInput struct {
	Title         string
	Description   string
	Priority      string
	DueDate       string
	AssigneeEmail string
}

// AssignTask creates a task in the project, assigned to the member
// identified by AssigneeEmail. Only the project's creator may assign tasks;
// the due date must fall within the project's date range. New tasks always
// start as "Not Started".
func (s *TaskService) AssignTask(projectID uint64, actor models.User, input AssignTaskInput) (*models.Task, error) {
	project, err := s.projectRepo.FindByID(projectID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanAssignTask(actor, *project) {
		return nil, ErrNotAllowed
	}

	if err := validation.RequireFields(input.Title, input.Description, input.Priority, input.DueDate, input.AssigneeEmail); err != nil {
		return nil, err
	}

	dueDate, err := validation.ParseDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateTaskDueDate(dueDate, project.StartDate, project.DueDate); err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.FindByEmail(input.AssigneeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !authz.CanViewProject(*assignee, *project) {
		return nil, ErrNotProjectMember
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.TaskStatusNotStarted,
		Priority:     input.Priority,
		DueDate:      dueDate,
		AssignedToID: assignee.ID,
		ProjectID:    project.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ChangeTaskStatus updates a task's status. Only the assignee may do this,
// and the submitted value must be a known status.
func (s *TaskService) ChangeTaskStatus(taskID uint64, actor models.User, rawStatus string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.CanChangeTaskStatus(actor, *task) {
		return nil, ErrNotTaskAssignee
	}

	status, err := models.ParseTaskStatus(rawStatus)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}
