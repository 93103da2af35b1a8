package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

// The strings match what the web UI has always displayed and stored.
const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// ParseTaskStatus maps a submitted status string to a known variant.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

// Task belongs to exactly one project and one assignee, both fixed at
// creation. Only the assignee may change its status.
type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:varchar(1024);not null" json:"description"`
	Status       TaskStatus     `gorm:"type:varchar(255);not null" json:"status"`
	Priority     string         `gorm:"type:varchar(255);not null" json:"priority"`
	DueDate      time.Time      `gorm:"type:date;not null" json:"due_date"`
	AssignedToID uint64         `gorm:"not null" json:"assigned_to"`
	ProjectID    uint64         `gorm:"not null" json:"project_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedTo User    `gorm:"foreignKey:AssignedToID" json:"-"`
	Project    Project `gorm:"foreignKey:ProjectID" json:"-"`
}
