package services_test

import (
	"testing"
	"time"

	"tracku/internal/config"
	"tracku/internal/models"
	"tracku/internal/repositories"
	"tracku/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockProjectRepository is a mock implementation of repositories.ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(project *models.Project) error {
	args := m.Called(project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(id string) (*models.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByUser(userID string) ([]models.Project, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(project *models.Project) error {
	args := m.Called(project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockUpdateRepository is a mock implementation of repositories.UpdateRepository.
type MockUpdateRepository struct {
	mock.Mock
}

func (m *MockUpdateRepository) Create(update *models.Update) error {
	args := m.Called(update)
	return args.Error(0)
}

func (m *MockUpdateRepository) GetByID(id string) (*models.Update, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Update), args.Error(1)
}

func (m *MockUpdateRepository) GetByProject(projectID string) ([]models.Update, error) {
	args := m.Called(projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Update), args.Error(1)
}

func (m *MockUpdateRepository) Save(update *models.Update) error {
	args := m.Called(update)
	return args.Error(0)
}

func (m *MockUpdateRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUpdateRepository) DeleteByProject(projectID string) error {
	args := m.Called(projectID)
	return args.Error(0)
}

func newAuthService(userRepo *MockUserRepository, projectRepo *MockProjectRepository, updateRepo *MockUpdateRepository) *services.AuthService {
	tokens := services.NewTokenService(config.Config{
		AccessSecret:     "test_access_secret",
		AccessExpiresIn:  15 * time.Minute,
		RefreshSecret:    "test_refresh_secret",
		RefreshExpiresIn: 7 * 24 * time.Hour,
	})
	return services.NewAuthService(userRepo, projectRepo, updateRepo, tokens, nil)
}

func TestAuthService_SignUp(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockProjectRepository), new(MockUpdateRepository))

	userRepo.On("GetByEmail", "john@email.com").Return(nil, repositories.ErrNotFound).Once()
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.SignUp("John Doe", "John@Email.com ", "passWord14%")
	assert.NoError(t, err)
	assert.Equal(t, "John Doe", user.FullName)
	assert.Equal(t, "john@email.com", user.Email) // case-normalized

	// The stored password is a hash, never the plaintext.
	assert.NotEqual(t, "passWord14%", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("passWord14%")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("anything-else")))

	userRepo.AssertExpectations(t)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockProjectRepository), new(MockUpdateRepository))

	userRepo.On("GetByEmail", "john@email.com").Return(&models.User{ID: "existing"}, nil).Once()

	_, err := authService.SignUp("John Doe", "john@email.com", "passWord14%")
	assert.ErrorIs(t, err, services.ErrUserExists)
	userRepo.AssertExpectations(t)
}

func TestAuthService_SignUp_PasswordPolicy(t *testing.T) {
	for _, password := range []string{
		"short1%",                // too short
		"passwordonly",          // no digit, no symbol
		"password14",            // no symbol
		"passWord14%taking21ch", // too long
		"pass word14%",          // space not in the allowed set
	} {
		userRepo := new(MockUserRepository)
		authService := newAuthService(userRepo, new(MockProjectRepository), new(MockUpdateRepository))
		userRepo.On("GetByEmail", "john@email.com").Return(nil, repositories.ErrNotFound).Once()

		_, err := authService.SignUp("John Doe", "john@email.com", password)
		assert.ErrorIs(t, err, services.ErrInvalidPassword, "password %q should be rejected", password)
	}
}

func TestAuthService_SignIn(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockProjectRepository), new(MockUpdateRepository))

	hash, _ := bcrypt.GenerateFromPassword([]byte("passWord14%"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		FullName: "John Doe",
		Email:    "john@email.com",
		Password: string(hash),
	}

	userRepo.On("GetByEmail", "john@email.com").Return(user, nil).Once()
	accessToken, refreshToken, err := authService.SignIn("john@email.com", "passWord14%")
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	// Wrong password.
	userRepo.On("GetByEmail", "john@email.com").Return(user, nil).Once()
	_, _, err = authService.SignIn("john@email.com", "wrongPassword1%")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user.
	userRepo.On("GetByEmail", "nobody@email.com").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = authService.SignIn("nobody@email.com", "passWord14%")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Refresh(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockProjectRepository), new(MockUpdateRepository))

	hash, _ := bcrypt.GenerateFromPassword([]byte("passWord14%"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		FullName: "John Doe",
		Email:    "john@email.com",
		Password: string(hash),
	}

	userRepo.On("GetByEmail", "john@email.com").Return(user, nil).Twice()
	_, refreshToken, err := authService.SignIn("john@email.com", "passWord14%")
	assert.NoError(t, err)

	accessToken, err := authService.Refresh(refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// Garbage in place of the refresh token.
	_, err = authService.Refresh("garbage")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Valid token but the user no longer exists.
	userRepo.On("GetByEmail", "john@email.com").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Refresh(refreshToken)
	assert.ErrorIs(t, err, services.ErrNotAuthorized)

	userRepo.AssertExpectations(t)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockProjectRepository), new(MockUpdateRepository))

	hash, _ := bcrypt.GenerateFromPassword([]byte("passWord14%"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		FullName: "John Doe",
		Email:    "john@email.com",
		Password: string(hash),
	}

	// Wrong current password.
	userRepo.On("GetByID", "user-123").Return(user, nil).Once()
	err := authService.UpdatePassword("user-123", "wrongPassword1%", "newPassWord15%")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)

	// Successful change re-hashes before persisting.
	userRepo.On("GetByID", "user-123").Return(user, nil).Once()
	userRepo.On("Save", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		saved := args.Get(0).(*models.User)
		assert.NotEqual(t, "newPassWord15%", saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("newPassWord15%")))
	}).Return(nil).Once()

	err = authService.UpdatePassword("user-123", "passWord14%", "newPassWord15%")
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_DeleteAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	projectRepo := new(MockProjectRepository)
	updateRepo := new(MockUpdateRepository)
	authService := newAuthService(userRepo, projectRepo, updateRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("passWord14%"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		FullName: "John Doe",
		Email:    "john@email.com",
		Password: string(hash),
	}

	// The email resolves to a different account than the caller's.
	userRepo.On("GetByEmail", "john@email.com").Return(user, nil).Once()
	_, err := authService.DeleteAccount("someone-else", "john@email.com", "passWord14%")
	assert.ErrorIs(t, err, services.ErrNotAuthorized)

	// Wrong password.
	userRepo.On("GetByEmail", "john@email.com").Return(user, nil).Once()
	_, err = authService.DeleteAccount("user-123", "john@email.com", "wrongPassword1%")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Successful delete cascades updates, then projects, then the user.
	projects := []models.Project{
		{ID: "proj-1", UserID: "user-123"},
		{ID: "proj-2", UserID: "user-123"},
	}
	userRepo.On("GetByEmail", "john@email.com").Return(user, nil).Once()
	projectRepo.On("GetByUser", "user-123").Return(projects, nil).Once()
	updateRepo.On("DeleteByProject", "proj-1").Return(nil).Once()
	updateRepo.On("DeleteByProject", "proj-2").Return(nil).Once()
	projectRepo.On("DeleteByUser", "user-123").Return(nil).Once()
	userRepo.On("Delete", "user-123").Return(nil).Once()

	deleted, err := authService.DeleteAccount("user-123", "john@email.com", "passWord14%")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", deleted.ID)

	userRepo.AssertExpectations(t)
	projectRepo.AssertExpectations(t)
	updateRepo.AssertExpectations(t)
}
