package repository

import (
	"github.com/teamflow-app/teamflow/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithCreator creates a project and adds the creator as its first
	// member within a single transaction.
	CreateWithCreator(project *models.Project, creator *models.User) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List returns all projects with their members
	List() ([]models.Project, error)

	// ListForUser returns the distinct projects a user created or is a member of
	ListForUser(userID uint64) ([]models.Project, error)

	// ListMemberships returns the projects a user is a member of
	ListMemberships(userID uint64) ([]models.Project, error)

	// ListMembers returns the members of a project
	ListMembers(projectID uint64) ([]models.User, error)

	// AddMember adds a user to the project's member set
	AddMember(project *models.Project, user *models.User) error

	// RemoveMember removes a user from the project's member set
	RemoveMember(project *models.Project, user *models.User) error

	// Delete deletes a project together with its tasks and memberships
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// ListByProject returns all tasks of a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListByProjectAndAssignee returns a member's tasks within a project
	ListByProjectAndAssignee(projectID, userID uint64) ([]models.Task, error)
}
