package services

import (
	"log"

	"tracku/internal/models"
	"tracku/internal/repositories"
	"tracku/pkg/events"

	"github.com/go-playground/validator/v10"
)

// ProjectService handles data access for projects. Authorization is
// enforced by the handlers before any of these methods run.
type ProjectService struct {
	projectRepo repositories.ProjectRepository
	updateRepo  repositories.UpdateRepository
	mqClient    *events.Client
	validate    *validator.Validate
}

// NewProjectService creates a new ProjectService. mqClient may be nil.
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	updateRepo repositories.UpdateRepository,
	mqClient *events.Client,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		updateRepo:  updateRepo,
		mqClient:    mqClient,
		validate:    validator.New(),
	}
}

// ListByUser retrieves every project owned by the given user.
func (s *ProjectService) ListByUser(userID string) ([]models.Project, error) {
	return s.projectRepo.GetByUser(userID)
}

// Get retrieves a single project by its ID.
func (s *ProjectService) Get(id string) (*models.Project, error) {
	return s.projectRepo.GetByID(id)
}

// Create adds a project for the given user. Status and progress take
// their defaults; the caller supplies title and description only.
func (s *ProjectService) Create(userID, title, description string) (*models.Project, error) {
	project := &models.Project{
		UserID:      userID,
		Title:       title,
		Status:      models.StatusNotStarted,
		Progress:    0,
		Description: description,
	}
	if err := s.validate.Struct(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}

	s.publish("project.created", map[string]interface{}{
		"projectID": project.ID,
		"userID":    project.UserID,
		"title":     project.Title,
	})
	return project, nil
}

// Edit replaces every mutable field of a project. Partial updates are not
// supported; all four fields must be supplied.
func (s *ProjectService) Edit(project *models.Project, title, status string, progress int, description string) (*models.Project, error) {
	project.Title = title
	project.Status = status
	project.Progress = progress
	project.Description = description

	if err := s.validate.Struct(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(project); err != nil {
		return nil, err
	}

	s.publish("project.updated", map[string]interface{}{
		"projectID": project.ID,
		"userID":    project.UserID,
		"status":    project.Status,
		"progress":  project.Progress,
	})
	return project, nil
}

// Remove deletes a project and its updates. The two deletes run
// sequentially with no rollback between them.
func (s *ProjectService) Remove(project *models.Project) error {
	if err := s.updateRepo.DeleteByProject(project.ID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(project.ID); err != nil {
		return err
	}

	s.publish("project.deleted", map[string]interface{}{
		"projectID": project.ID,
		"userID":    project.UserID,
	})
	return nil
}

func (s *ProjectService) publish(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
