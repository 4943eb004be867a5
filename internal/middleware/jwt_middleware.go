package middleware

import (
	"fmt"
	"log"
	"strings"

	"tracku/internal/repositories"
	"tracku/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthenticatedUser is the resolved identity attached to the request
// context once the gate has passed.
type AuthenticatedUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// LocalsUserKey is the Locals key the resolved identity is stored under.
const LocalsUserKey = "user"

// AuthRequired is a Fiber middleware that authenticates a request. The
// checks run in order and each one is terminal: Bearer header present,
// token substring non-empty, signature/expiry valid against the access
// secret, claimed user still in the store. No handler runs with a
// partially resolved identity.
func AuthRequired(tokens *services.TokenService, users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		tokenString := strings.Split(authHeader, " ")[1]
		if tokenString == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Token not found",
			})
		}

		claims, err := tokens.Verify(tokenString, services.AccessToken)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid Token",
			})
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		c.Locals(LocalsUserKey, AuthenticatedUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
		})
		return c.Next()
	}
}

// CurrentUser returns the identity attached by AuthRequired.
func CurrentUser(c *fiber.Ctx) (AuthenticatedUser, error) {
	user, ok := c.Locals(LocalsUserKey).(AuthenticatedUser)
	if !ok {
		return AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}
	return user, nil
}
