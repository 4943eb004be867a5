package repositories

import (
	"errors"
	"fmt"
	"tracku/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database.
func (r *GORMProjectRepository) Create(project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *GORMProjectRepository) GetByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}
	return &project, nil
}

// GetByUser retrieves every project owned by the given user.
func (r *GORMProjectRepository) GetByUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to get projects for user %s: %w", userID, err)
	}
	return projects, nil
}

// Save persists changes to an existing project.
func (r *GORMProjectRepository) Save(project *models.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return fmt.Errorf("failed to save project %s: %w", project.ID, err)
	}
	return nil
}

// Delete removes a project by its ID.
func (r *GORMProjectRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

// DeleteByUser removes every project owned by the given user.
func (r *GORMProjectRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.Project{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete projects for user %s: %w", userID, err)
	}
	return nil
}
