package handlers

import (
	"errors"
	"log"
	"time"

	"tracku/internal/config"
	"tracku/internal/middleware"
	"tracku/internal/services"
	"tracku/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// refreshCookieName is the cookie the refresh token travels in. The token
// is never returned in a JSON body.
const refreshCookieName = "token"

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	service *services.AuthService
	cfg     config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.AuthService, cfg config.Config) *UserHandler {
	return &UserHandler{
		service: service,
		cfg:     cfg,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	users := router.Group("/users")
	users.Post("/signup", h.HandleSignUp)
	users.Post("/signin", h.HandleSignIn)
	users.Get("/refresh", h.HandleRefresh)
	users.Post("/logout", h.HandleLogout)
	users.Get("/info", authRequired, h.HandleInfo)
	users.Patch("/update-user", authRequired, h.HandleUpdateName)
	users.Patch("/update-password", authRequired, h.HandleUpdatePassword)
	users.Delete("/delete-user", authRequired, h.HandleDeleteUser)
}

// UserResponse is the public shape of a user record.
type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.RefreshExpiresIn),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func (h *UserHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// SignUpRequest represents the request body for sign-up.
type SignUpRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HandleSignUp registers a new user.
func (h *UserHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}
	if req.Password != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Passwords do not match",
		})
	}

	user, err := h.service.SignUp(req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "User already exists",
			})
		case errors.Is(err, services.ErrInvalidPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid Password",
			})
		default:
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": validation.FirstMessage(err),
				})
			}
			log.Printf("Error signing up user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	})
}

// SignInRequest represents the request body for sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignIn authenticates a user, returns an access token and sets the
// refresh cookie.
func (h *UserHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}

	accessToken, refreshToken, err := h.service.SignIn(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User does not exist",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid Credentials",
			})
		default:
			log.Printf("Error signing in user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		}
	}

	h.setRefreshCookie(c, refreshToken)
	return c.JSON(fiber.Map{"accessToken": accessToken})
}

// HandleRefresh exchanges a valid refresh cookie for a new access token.
func (h *UserHandler) HandleRefresh(c *fiber.Ctx) error {
	cookieToken := c.Cookies(refreshCookieName)
	if cookieToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	accessToken, err := h.service.Refresh(cookieToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token Expired",
			})
		case errors.Is(err, services.ErrNotAuthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not authorized",
			})
		default:
			log.Printf("Error refreshing token: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		}
	}

	return c.JSON(fiber.Map{"accessToken": accessToken})
}

// HandleLogout clears the refresh cookie.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"message": "Cookies Deleted"})
}

// HandleInfo returns the authenticated user's public data.
func (h *UserHandler) HandleInfo(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"fullName": user.FullName,
		"email":    user.Email,
	})
}

// UpdateNameRequest represents the request body for a name change.
type UpdateNameRequest struct {
	NewFullName string `json:"newFullName"`
}

// HandleUpdateName changes the authenticated user's full name.
func (h *UserHandler) HandleUpdateName(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req UpdateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.NewFullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}

	updated, err := h.service.UpdateName(user.ID, req.NewFullName)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validation.FirstMessage(err),
			})
		}
		log.Printf("Error updating user name: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(UserResponse{
		ID:       updated.ID,
		FullName: updated.FullName,
		Email:    updated.Email,
	})
}

// UpdatePasswordRequest represents the request body for a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HandleUpdatePassword changes the authenticated user's password.
func (h *UserHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Passwords do not match",
		})
	}

	if err := h.service.UpdatePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		case errors.Is(err, services.ErrInvalidPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid Password",
			})
		default:
			log.Printf("Error updating password: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// DeleteUserRequest represents the request body for account deletion.
type DeleteUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleDeleteUser deletes the authenticated user's account and every
// project and update it owns.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req DeleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields cannot be empty",
		})
	}

	deleted, err := h.service.DeleteAccount(user.ID, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		case errors.Is(err, services.ErrNotAuthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not authorized",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid Credentials",
			})
		default:
			log.Printf("Error deleting user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		}
	}

	h.clearRefreshCookie(c)
	return c.JSON(UserResponse{
		ID:       deleted.ID,
		FullName: deleted.FullName,
		Email:    deleted.Email,
	})
}
