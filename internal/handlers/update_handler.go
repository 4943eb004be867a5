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

// UpdateHandler handles HTTP requests for progress updates.
type UpdateHandler struct {
	updates  *services.UpdateService
	projects *services.ProjectService
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(updates *services.UpdateService, projects *services.ProjectService) *UpdateHandler {
	return &UpdateHandler{
		updates:  updates,
		projects: projects,
	}
}

// RegisterRoutes registers the update routes with the Fiber app.
func (h *UpdateHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	updates := router.Group("/updates", authRequired)
	updates.Get("/:projectId", h.HandleList)
	updates.Post("/:projectId", h.HandleCreate)
	updates.Get("/project/:projectId/update/:updateId", h.HandleGet)
	updates.Put("/project/:projectId/update/:updateId", h.HandleEdit)
	updates.Delete("/project/:projectId/update/:updateId", h.HandleDelete)
}

// findOwnedParent resolves the :projectId segment to a project owned by
// the authenticated user. When it returns a nil project the response has
// already been written.
func (h *UpdateHandler) findOwnedParent(c *fiber.Ctx) (*models.Project, error) {
	projectID := c.Params("projectId")
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Project ID is not valid",
		})
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Parent project not found",
			})
		}
		log.Printf("Error getting parent project %s: %v", projectID, err)
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

// findUpdate resolves the :updateId segment and checks that the update's
// stored parent matches the projectId path segment. Addressing an update
// through the wrong project path fails even when the caller owns both.
func (h *UpdateHandler) findUpdate(c *fiber.Ctx, projectID string) (*models.Update, error) {
	updateID := c.Params("updateId")
	if _, err := uuid.Parse(updateID); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Update ID is not valid",
		})
	}

	update, err := h.updates.Get(updateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Update not found",
			})
		}
		log.Printf("Error getting update %s: %v", updateID, err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	if update.ProjectID != projectID {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unauthorized Update",
		})
	}

	return update, nil
}

// HandleList returns every update of a project.
func (h *UpdateHandler) HandleList(c *fiber.Ctx) error {
	project, err := h.findOwnedParent(c)
	if project == nil {
		return err
	}

	updates, err := h.updates.ListByProject(project.ID)
	if err != nil {
		log.Printf("Error listing updates for project %s: %v", project.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(updates)
}

// CreateUpdateRequest represents the request body for update creation.
type CreateUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HandleCreate adds an update under a project.
func (h *UpdateHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUpdateRequest
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

	project, err := h.findOwnedParent(c)
	if project == nil {
		return err
	}

	update, err := h.updates.Create(project.ID, req.Title, req.Description)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validation.FirstMessage(err),
			})
		}
		log.Printf("Error creating update: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(update)
}

// HandleGet returns a single update.
func (h *UpdateHandler) HandleGet(c *fiber.Ctx) error {
	project, err := h.findOwnedParent(c)
	if project == nil {
		return err
	}

	update, err := h.findUpdate(c, project.ID)
	if update == nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":          update.ID,
		"title":       update.Title,
		"description": update.Description,
		"added":       update.CreatedAt,
	})
}

// HandleEdit replaces both mutable fields of an update.
func (h *UpdateHandler) HandleEdit(c *fiber.Ctx) error {
	var req CreateUpdateRequest
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

	project, err := h.findOwnedParent(c)
	if project == nil {
		return err
	}

	update, err := h.findUpdate(c, project.ID)
	if update == nil {
		return err
	}

	modified, err := h.updates.Edit(update, req.Title, req.Description)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validation.FirstMessage(err),
			})
		}
		log.Printf("Error editing update %s: %v", update.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(modified)
}

// HandleDelete removes an update.
func (h *UpdateHandler) HandleDelete(c *fiber.Ctx) error {
	project, err := h.findOwnedParent(c)
	if project == nil {
		return err
	}

	update, err := h.findUpdate(c, project.ID)
	if update == nil {
		return err
	}

	if err := h.updates.Remove(update); err != nil {
		log.Printf("Error deleting update %s: %v", update.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"message": "Update was deleted successfully"})
}
