package services

import (
	"log"

	"tracku/internal/models"
	"tracku/internal/repositories"
	"tracku/pkg/events"

	"github.com/go-playground/validator/v10"
)

// UpdateService handles data access for progress updates. Ownership of
// the parent project is checked by the handlers before these run.
type UpdateService struct {
	updateRepo repositories.UpdateRepository
	mqClient   *events.Client
	validate   *validator.Validate
}

// NewUpdateService creates a new UpdateService. mqClient may be nil.
func NewUpdateService(updateRepo repositories.UpdateRepository, mqClient *events.Client) *UpdateService {
	return &UpdateService{
		updateRepo: updateRepo,
		mqClient:   mqClient,
		validate:   validator.New(),
	}
}

// ListByProject retrieves every update belonging to the given project.
func (s *UpdateService) ListByProject(projectID string) ([]models.Update, error) {
	return s.updateRepo.GetByProject(projectID)
}

// Get retrieves a single update by its ID.
func (s *UpdateService) Get(id string) (*models.Update, error) {
	return s.updateRepo.GetByID(id)
}

// Create adds an update under the given project.
func (s *UpdateService) Create(projectID, title, description string) (*models.Update, error) {
	update := &models.Update{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
	}
	if err := s.validate.Struct(update); err != nil {
		return nil, err
	}

	if err := s.updateRepo.Create(update); err != nil {
		return nil, err
	}

	s.publish("update.created", map[string]interface{}{
		"updateID":  update.ID,
		"projectID": update.ProjectID,
		"title":     update.Title,
	})
	return update, nil
}

// Edit replaces both mutable fields of an update.
func (s *UpdateService) Edit(update *models.Update, title, description string) (*models.Update, error) {
	update.Title = title
	update.Description = description

	if err := s.validate.Struct(update); err != nil {
		return nil, err
	}

	if err := s.updateRepo.Save(update); err != nil {
		return nil, err
	}

	s.publish("update.updated", map[string]interface{}{
		"updateID":  update.ID,
		"projectID": update.ProjectID,
	})
	return update, nil
}

// Remove deletes an update.
func (s *UpdateService) Remove(update *models.Update) error {
	if err := s.updateRepo.Delete(update.ID); err != nil {
		return err
	}

	s.publish("update.deleted", map[string]interface{}{
		"updateID":  update.ID,
		"projectID": update.ProjectID,
	})
	return nil
}

func (s *UpdateService) publish(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
