package repositories

import "tracku/internal/models"

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id string) (*models.Project, error)
	GetByUser(userID string) ([]models.Project, error)
	Save(project *models.Project) error
	Delete(id string) error
	DeleteByUser(userID string) error
}
