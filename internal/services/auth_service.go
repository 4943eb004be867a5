package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"tracku/internal/models"
	"tracku/internal/repositories"
	"tracku/internal/validation"
	"tracku/pkg/events"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the user lifecycle and every credential check: sign-up,
// sign-in, token refresh, name and password changes, and account deletion
// with its cascade.
type AuthService struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	updateRepo  repositories.UpdateRepository
	tokens      *TokenService
	mqClient    *events.Client
	validate    *validator.Validate
}

// NewAuthService creates a new AuthService. mqClient may be nil when no
// broker is configured.
func NewAuthService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	updateRepo repositories.UpdateRepository,
	tokens *TokenService,
	mqClient *events.Client,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		updateRepo:  updateRepo,
		tokens:      tokens,
		mqClient:    mqClient,
		validate:    validator.New(),
	}
}

// hashPassword computes the bcrypt hash for a plaintext password. A
// hashing failure is an internal error for the calling operation, never a
// silent mismatch.
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// checkPassword compares a plaintext password against a stored hash. The
// comparison is constant-time. Only a genuine mismatch yields (false, nil);
// any other bcrypt failure surfaces as an error.
func (s *AuthService) checkPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to compare password: %w", err)
}

// SignUp registers a new user. The email is case-normalized, the password
// must satisfy the complexity policy, and only its hash is persisted.
func (s *AuthService) SignUp(fullName, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		FullName: fullName,
		Email:    email,
		Password: password,
	}
	if err := s.validate.Struct(user); err != nil {
		return nil, err
	}
	if !validation.ValidPassword(password) {
		return nil, ErrInvalidPassword
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn verifies credentials and issues an access/refresh token pair.
func (s *AuthService) SignIn(email, password string) (accessToken, refreshToken string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	ok, err := s.checkPassword(password, user.Password)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", ErrInvalidCredentials
	}

	accessToken, err = s.tokens.Issue(user, AccessToken)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.tokens.Issue(user, RefreshToken)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Refresh verifies a refresh token and mints a new access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, RefreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(claims.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrNotAuthorized
		}
		return "", err
	}

	return s.tokens.Issue(user, AccessToken)
}

// UpdateName changes a user's full name.
func (s *AuthService) UpdateName(userID, newFullName string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FullName = strings.TrimSpace(newFullName)
	if err := s.validate.Struct(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword changes a user's password after verifying the current
// one. The new password is re-hashed before persisting; the plaintext is
// never stored.
func (s *AuthService) UpdatePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := s.checkPassword(currentPassword, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidPassword
	}

	if !validation.ValidPassword(newPassword) {
		return ErrInvalidPassword
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash

	return s.userRepo.Save(user)
}

// DeleteAccount removes a user after verifying their email and password.
// The cascade runs as three sequential deletes (updates of each owned
// project, then the projects, then the user) with no rollback if a later
// step fails.
func (s *AuthService) DeleteAccount(userID, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.ID != userID {
		return nil, ErrNotAuthorized
	}

	ok, err := s.checkPassword(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	projects, err := s.projectRepo.GetByUser(user.ID)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		if err := s.updateRepo.DeleteByProject(project.ID); err != nil {
			return nil, err
		}
	}
	if err := s.projectRepo.DeleteByUser(user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return nil, err
	}

	s.publish("user.deleted", map[string]interface{}{
		"userID": user.ID,
		"email":  user.Email,
	})

	return user, nil
}

// publish sends an activity event when a broker is configured. Publishing
// failures are logged, never surfaced to the caller.
func (s *AuthService) publish(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
