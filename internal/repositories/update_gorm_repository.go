package repositories

import (
	"errors"
	"fmt"
	"tracku/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUpdateRepository is a GORM implementation of UpdateRepository.
type GORMUpdateRepository struct {
	db *gorm.DB
}

// NewGORMUpdateRepository creates a new instance of GORMUpdateRepository.
func NewGORMUpdateRepository(db *gorm.DB) *GORMUpdateRepository {
	return &GORMUpdateRepository{
		db: db,
	}
}

// Create creates a new update in the database.
func (r *GORMUpdateRepository) Create(update *models.Update) error {
	if update.ID == "" {
		update.ID = uuid.New().String()
	}
	if err := r.db.Create(update).Error; err != nil {
		return fmt.Errorf("failed to create update: %w", err)
	}
	return nil
}

// GetByID retrieves an update by its ID.
func (r *GORMUpdateRepository) GetByID(id string) (*models.Update, error) {
	var update models.Update
	if err := r.db.First(&update, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get update by ID %s: %w", id, err)
	}
	return &update, nil
}

// GetByProject retrieves every update belonging to the given project.
func (r *GORMUpdateRepository) GetByProject(projectID string) ([]models.Update, error) {
	var updates []models.Update
	if err := r.db.Where("project_id = ?", projectID).Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to get updates for project %s: %w", projectID, err)
	}
	return updates, nil
}

// Save persists changes to an existing update.
func (r *GORMUpdateRepository) Save(update *models.Update) error {
	if err := r.db.Save(update).Error; err != nil {
		return fmt.Errorf("failed to save update %s: %w", update.ID, err)
	}
	return nil
}

// Delete removes an update by its ID.
func (r *GORMUpdateRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Update{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete update %s: %w", id, err)
	}
	return nil
}

// DeleteByProject removes every update belonging to the given project.
func (r *GORMUpdateRepository) DeleteByProject(projectID string) error {
	if err := r.db.Delete(&models.Update{}, "project_id = ?", projectID).Error; err != nil {
		return fmt.Errorf("failed to delete updates for project %s: %w", projectID, err)
	}
	return nil
}
