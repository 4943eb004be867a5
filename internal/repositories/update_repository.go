package repositories

import "tracku/internal/models"

// UpdateRepository defines the interface for progress-update data access.
type UpdateRepository interface {
	Create(update *models.Update) error
	GetByID(id string) (*models.Update, error)
	GetByProject(projectID string) ([]models.Update, error)
	Save(update *models.Update) error
	Delete(id string) error
	DeleteByProject(projectID string) error
}
