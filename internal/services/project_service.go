package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teamflow-app/teamflow/internal/authz"
	"github.com/teamflow-app/teamflow/internal/models"
	"github.com/teamflow-app/teamflow/internal/repository"
	"github.com/teamflow-app/teamflow/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound          = errors.New("project not found")
	ErrNotAllowed               = errors.New("not allowed")
	ErrAlreadyMember            = errors.New("member already added")
	ErrCannotRemoveCreator      = errors.New("cannot remove the creator of the project")
	ErrMemberHasUnfinishedTasks = errors.New("member has unfinished tasks")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository

	// legacyStatusFilter selects the historical literal status match in the
	// member-removal guard.
	legacyStatusFilter bool
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, legacyStatusFilter bool) *ProjectService {
	return &ProjectService{
		projectRepo:        projectRepo,
		taskRepo:           taskRepo,
		userRepo:           userRepo,
		legacyStatusFilter: legacyStatusFilter,
	}
}

// CreateProjectInput represents the raw form input for creating a project.
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   string
	DueDate     string
}

// CreateProject validates the input and creates a project with the creator
// as its sole initial member.
func (s *ProjectService) CreateProject(creator models.User, input CreateProjectInput) (*models.Project, error) {
	if err := validation.RequireFields(input.Name, input.StartDate, input.DueDate, input.Description); err != nil {
		return nil, err
	}

	startDate, err := validation.ParseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := validation.ParseDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	today := validation.Today(time.Now())
	if err := validation.ValidateProjectDates(startDate, dueDate, today); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   startDate,
		DueDate:     dueDate,
		CreatedByID: creator.ID,
	}

	if err := s.projectRepo.CreateWithCreator(project, &creator); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ProjectTasks pairs a project with a set of its tasks.
type ProjectTasks struct {
	Project models.Project
	Tasks   []models.Task
}

// ListHomeProjects returns the user's membership projects, each with the
// tasks the user is allowed to see: all of them for projects the user
// created, only the user's own tasks otherwise.
func (s *ProjectService) ListHomeProjects(user models.User) ([]ProjectTasks, error) {
	projects, err := s.projectRepo.ListMemberships(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]ProjectTasks, 0, len(projects))
	for _, project := range projects {
		var tasks []models.Task
		if project.CreatedByID == user.ID {
			tasks, err = s.taskRepo.ListByProject(project.ID)
		} else {
			tasks, err = s.taskRepo.ListByProjectAndAssignee(project.ID, user.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		result = append(result, ProjectTasks{Project: project, Tasks: tasks})
	}

	return result, nil
}

// ListProjectsForUser returns the distinct projects the user created or is a
// member of.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// MemberTasks pairs a project member with their tasks in that project.
type MemberTasks struct {
	Member models.User
	Tasks  []models.Task
}

// ListMemberTasks pairs each member of the project with their tasks in it.
// Project.Members must be loaded; view authorization happens before this is
// called.
func (s *ProjectService) ListMemberTasks(project models.Project) ([]MemberTasks, error) {
	members := make([]MemberTasks, 0, len(project.Members))
	for _, member := range project.Members {
		tasks, err := s.taskRepo.ListByProjectAndAssignee(project.ID, member.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list member tasks: %w", err)
		}
		members = append(members, MemberTasks{Member: member, Tasks: tasks})
	}

	return members, nil
}

// DeleteProject removes a project together with its tasks and memberships.
// Only the creator may delete a project.
func (s *ProjectService) DeleteProject(projectID uint64, actor models.User) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanDeleteProject(actor, *project) {
		return ErrNotAllowed
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddMember adds the user identified by email to the project.
func (s *ProjectService) AddMember(projectID uint64, actor models.User, email string) error {
	project, err := s.projectRepo.FindByID(projectID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanAddMember(actor, *project) {
		return ErrNotAllowed
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if authz.CanViewProject(*user, *project) {
		return ErrAlreadyMember
	}

	if err := s.projectRepo.AddMember(project, user); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember removes a member from the project. The creator cannot be
// removed, and neither can a member who still has unfinished tasks in the
// project.
func (s *ProjectService) RemoveMember(projectID uint64, actor models.User, memberID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	target, err := s.userRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	tasks, err := s.taskRepo.ListByProjectAndAssignee(project.ID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to list member tasks: %w", err)
	}

	unfinished := authz.HasUnfinishedTask(tasks, s.legacyStatusFilter)
	if !authz.CanRemoveMember(actor, *project, *target, unfinished) {
		switch {
		case actor.ID != project.CreatedByID:
			return ErrNotAllowed
		case target.ID == project.CreatedByID:
			return ErrCannotRemoveCreator
		default:
			return ErrMemberHasUnfinishedTasks
		}
	}

	if err := s.projectRepo.RemoveMember(project, target); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
