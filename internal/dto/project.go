package dto

import (
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/models"
)

// ProjectDTO represents a project in API responses. Members are listed as
// user IDs; dates use the "YYYY-MM-DD" wire format.
type ProjectDTO struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	DueDate     string   `json:"due_date"`
	CreatedBy   uint64   `json:"created_by"`
	Members     []uint64 `json:"members"`
}

// TaskDTO represents a task in web view responses.
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Priority    string            `json:"priority"`
	DueDate     string            `json:"due_date"`
	AssignedTo  uint64            `json:"assigned_to"`
	ProjectID   uint64            `json:"project_id"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Project.Members must
// be loaded.
func ToProjectDTO(project models.Project) ProjectDTO {
	members := make([]uint64, len(project.Members))
	for i, m := range project.Members {
		members[i] = m.ID
	}

	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate.Format(constants.DateLayout),
		DueDate:     project.DueDate.Format(constants.DateLayout),
		CreatedBy:   project.CreatedByID,
		Members:     members,
	}
}

// ToProjectDTOs converts a slice of Project models
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate.Format(constants.DateLayout),
		AssignedTo:  task.AssignedToID,
		ProjectID:   task.ProjectID,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
