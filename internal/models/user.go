package models

import (
	"time"
)

// User is identified by email; the username is a non-unique display name.
// Users are never deleted.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(255);not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	CreatedProjects []Project `gorm:"foreignKey:CreatedByID" json:"-"`
	Projects        []Project `gorm:"many2many:project_members;" json:"-"`
	Tasks           []Task    `gorm:"foreignKey:AssignedToID" json:"-"`
}
