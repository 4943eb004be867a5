package handlers

import (
	"errors"
	"log"

	"tracku/internal/middleware"
	"tracku/internal/models"
	"tracku/internal/repositories"
	"tracku/internal/services"
	"tracku/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	service *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// RegisterRoutes registers the project routes with the Fiber app.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	projects := router.Group("/projects", authRequired)
	projects.Get("/", h.HandleList)
	projects.Post("/", h.HandleCreate)
	projects.Get("/:projectId", h.HandleGet)
	projects.Put("/:projectId", h.HandleEdit)
	projects.Delete("/:projectId", h.HandleDelete)
}

// findOwnedProject applies the ownership rule for a :projectId route: the
// id must be well-formed, the project must exist, and it must belong to
// the authenticated user. When it returns a nil project the response has
// already been written.
func (h *ProjectHandler) findOwnedProject(c *fiber.Ctx) (*models.Project, error) {
	projectID := c.Params("projectId")
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Project ID is not valid",
		})
	}

	project, err := h.service.Get(projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Project not found",
			})
		}
		log.Printf("Error getting project %s: %v", projectID, err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}
	if project.UserID != user.ID {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authorized",
		})
	}

	return project, nil
}

// HandleList returns every project owned by the authenticated user.
func (h *ProjectHandler) HandleList(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	projects, err := h.service.ListByUser(user.ID)
	if err != nil {
		log.Printf("Error listing projects for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(projects)
}

// CreateProjectRequest represents the request body for project creation.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HandleCreate adds a project owned by the authenticated user.
func (h *ProjectHandler) HandleCreate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Title == "" || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}

	project, err := h.service.Create(user.ID, req.Title, req.Description)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validation.FirstMessage(err),
			})
		}
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleGet returns a single project.
func (h *ProjectHandler) HandleGet(c *fiber.Ctx) error {
	project, err := h.findOwnedProject(c)
	if project == nil {
		return err
	}
	return c.JSON(project)
}

// EditProjectRequest represents the request body for a project update.
// Every field is required; partial updates are not supported. Progress is
// a pointer so an explicit zero is distinguishable from absence.
type EditProjectRequest struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	Progress    *int   `json:"progress"`
	Description string `json:"description"`
}

// HandleEdit replaces every mutable field of a project.
func (h *ProjectHandler) HandleEdit(c *fiber.Ctx) error {
	var req EditProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Title == "" || req.Status == "" || req.Progress == nil || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}

	project, err := h.findOwnedProject(c)
	if project == nil {
		return err
	}

	updated, err := h.service.Edit(project, req.Title, req.Status, *req.Progress, req.Description)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validation.FirstMessage(err),
			})
		}
		log.Printf("Error updating project %s: %v", project.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(updated)
}

// HandleDelete removes a project and all of its updates.
func (h *ProjectHandler) HandleDelete(c *fiber.Ctx) error {
	project, err := h.findOwnedProject(c)
	if project == nil {
		return err
	}

	if err := h.service.Remove(project); err != nil {
		log.Printf("Error deleting project %s: %v", project.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"message": "Project was deleted successfully"})
}
