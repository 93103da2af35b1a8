package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is owned by the user who created it. The creator is added to
// Members on creation and can never be removed from them.
type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:varchar(255);not null" json:"description"`
	StartDate   time.Time      `gorm:"type:date;not null" json:"start_date"`
	DueDate     time.Time      `gorm:"type:date;not null" json:"due_date"`
	CreatedByID uint64         `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy User   `gorm:"foreignKey:CreatedByID" json:"-"`
	Members   []User `gorm:"many2many:project_members;" json:"members,omitempty"`
	Tasks     []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
