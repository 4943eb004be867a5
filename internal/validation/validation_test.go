package validation_test

import (
	"strings"
	"testing"

	"tracku/internal/models"
	"tracku/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidPassword(t *testing.T) {
	valid := []string{
		"passWord14%",
		"a1!aaaaa",             // exactly 8
		"abcdefgh1234567890!@", // exactly 20
	}
	for _, password := range valid {
		assert.True(t, validation.ValidPassword(password), "password %q should be accepted", password)
	}

	invalid := []string{
		"",
		"a1!aaaa",               // 7 chars
		"abcdefgh1234567890!@#", // 21 chars
		"password!",             // no digit
		"12345678!",             // no letter
		"password123",           // no symbol
		"passWord14$",           // $ outside the symbol set
		" assWord14%",           // leading space
	}
	for _, password := range invalid {
		assert.False(t, validation.ValidPassword(password), "password %q should be rejected", password)
	}
}

func TestFirstMessage_TitleBoundaries(t *testing.T) {
	validate := validator.New()

	cases := []struct {
		title   string
		message string
	}{
		{strings.Repeat("a", 3), "Title should have at least 4 characters"},
		{strings.Repeat("a", 51), "Title cannot have more than 50 characters"},
		{"", "Title is required"},
	}
	for _, tc := range cases {
		project := models.Project{
			UserID:      "7f9c24e5-2f1a-4b0a-9c5a-3d2f1a4b0a9c",
			Title:       tc.title,
			Status:      models.StatusNotStarted,
			Progress:    0,
			Description: "A valid description",
		}
		err := validate.Struct(project)
		assert.Error(t, err)
		assert.Equal(t, tc.message, validation.FirstMessage(err))
	}

	// Exactly 4 and exactly 50 characters pass.
	for _, length := range []int{4, 50} {
		project := models.Project{
			UserID:      "7f9c24e5-2f1a-4b0a-9c5a-3d2f1a4b0a9c",
			Title:       strings.Repeat("a", length),
			Status:      models.StatusNotStarted,
			Progress:    0,
			Description: "A valid description",
		}
		assert.NoError(t, validate.Struct(project))
	}
}

func TestFirstMessage_StatusAndProgress(t *testing.T) {
	validate := validator.New()

	project := models.Project{
		UserID:      "7f9c24e5-2f1a-4b0a-9c5a-3d2f1a4b0a9c",
		Title:       "Valid title",
		Status:      "Done",
		Progress:    0,
		Description: "A valid description",
	}
	err := validate.Struct(project)
	assert.Error(t, err)
	assert.Equal(t, "Done is not supported", validation.FirstMessage(err))

	project.Status = models.StatusInProgress
	project.Progress = 101
	err = validate.Struct(project)
	assert.Error(t, err)
	assert.Equal(t, "Progress cannot be more than 100", validation.FirstMessage(err))

	project.Progress = -1
	err = validate.Struct(project)
	assert.Error(t, err)
	assert.Equal(t, "Progress cannot be less than 0", validation.FirstMessage(err))
}

func TestFirstMessage_FirstFailingFieldWins(t *testing.T) {
	validate := validator.New()

	// Both title and description out of range: the first declared field's
	// message is reported.
	project := models.Project{
		UserID:      "7f9c24e5-2f1a-4b0a-9c5a-3d2f1a4b0a9c",
		Title:       "abc",
		Status:      models.StatusNotStarted,
		Progress:    0,
		Description: "abc",
	}
	err := validate.Struct(project)
	assert.Error(t, err)
	assert.Equal(t, "Title should have at least 4 characters", validation.FirstMessage(err))
}

func TestFirstMessage_User(t *testing.T) {
	validate := validator.New()

	user := models.User{
		FullName: "Jo",
		Email:    "john@email.com",
		Password: "hash",
	}
	err := validate.Struct(user)
	assert.Error(t, err)
	assert.Equal(t, "Fullname should have at least 4 characters", validation.FirstMessage(err))

	user.FullName = "John Doe"
	user.Email = "not-an-email"
	err = validate.Struct(user)
	assert.Error(t, err)
	assert.Equal(t, "Invalid Email", validation.FirstMessage(err))
}
