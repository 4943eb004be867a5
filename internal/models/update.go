package models

import "time"

// Update is a progress note attached to a project. ProjectID is fixed at
// creation time; ownership is derived from the parent project.
type Update struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProjectID   string    `json:"project" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(50)" validate:"required,min=4,max=50"`
	Description string    `json:"description" gorm:"type:varchar(800)" validate:"required,min=4,max=800"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
