package repository

import (
	"github.com/teamflow-app/teamflow/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithCreator creates a project and its creator membership atomically.
func (r *GormProjectRepository) CreateWithCreator(project *models.Project, creator *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return tx.Model(project).Association("Members").Append(creator)
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects with their members
func (r *GormProjectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Members").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListForUser returns the distinct projects a user created or is a member of
func (r *GormProjectRepository) ListForUser(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Distinct("projects.*").
		Joins("LEFT JOIN project_members ON project_members.project_id = projects.id").
		Where("projects.created_by_id = ? OR project_members.user_id = ?", userID, userID).
		Preload("Members").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListMemberships returns the projects a user is a member of
func (r *GormProjectRepository) ListMemberships(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Preload("Members").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListMembers returns the members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN project_members ON project_members.user_id = users.id").
		Where("project_members.project_id = ?", projectID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AddMember adds a user to the project's member set
func (r *GormProjectRepository) AddMember(project *models.Project, user *models.User) error {
	return r.db.Model(project).Association("Members").Append(user)
}

// RemoveMember removes a user from the project's member set
func (r *GormProjectRepository) RemoveMember(project *models.Project, user *models.User) error {
	return r.db.Model(project).Association("Members").Delete(user)
}

// Delete deletes a project, its tasks and its memberships in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
