package models

import "time"

// Project status values.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Project is a tracked piece of work owned by exactly one user. UserID is
// fixed at creation time; updates must supply every mutable field.
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string    `json:"user" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(50)" validate:"required,min=4,max=50"`
	Status      string    `json:"status" gorm:"type:varchar(20)" validate:"required,oneof='Not Started' 'In Progress' 'Completed'"`
	Progress    int       `json:"progress" validate:"min=0,max=100"`
	Description string    `json:"description" gorm:"type:varchar(800)" validate:"required,min=4,max=800"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
