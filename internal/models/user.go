package models

import "time"

// User represents an account holder. The Password field always carries a
// bcrypt hash once the record leaves the services layer; the plaintext is
// never persisted.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FullName  string    `json:"fullName" gorm:"type:varchar(100)" validate:"required,min=4"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
