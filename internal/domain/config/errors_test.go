package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *UserError
		expected string
	}{
		{
			name:     "message only",
			err:      &UserError{Code: ErrCodeConfigNotFound, Message: "configuration file not found"},
			expected: "configuration file not found",
		},
		{
			name: "message with context",
			err: &UserError{
				Code:       ErrCodeConfigNotFound,
				Message:    "configuration file not found",
				Context:    "waypoint.yaml",
				Suggestion: "check --config",
			},
			expected: "configuration file not found (at waypoint.yaml)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUserError_Format(t *testing.T) {
	t.Parallel()

	err := NewConfigNotFoundError("/etc/waypoint.yaml")
	formatted := err.Format()

	assert.Contains(t, formatted, "[CONFIG_NOT_FOUND]")
	assert.Contains(t, formatted, "Location: /etc/waypoint.yaml")
	assert.Contains(t, formatted, "Suggestion: Check the --config path")
}

func TestUserError_UnwrapAndIs(t *testing.T) {
	t.Parallel()

	root := errors.New("disk full")
	err := NewStateWriteError("/tmp/waypoint.state", root)

	assert.ErrorIs(t, err, root)
	assert.ErrorIs(t, err, &UserError{Code: ErrCodeStateWrite})
	assert.NotErrorIs(t, err, &UserError{Code: ErrCodeConfigParse})
}

func TestUserError_WithHelpersCopy(t *testing.T) {
	t.Parallel()

	original := NewUserError(ErrCodeConfigInvalid, "bad")
	derived := original.
		WithContext("waypoint.yaml").
		WithSuggestion("fix it").
		WithUnderlying(errors.New("cause"))

	assert.Equal(t, "waypoint.yaml", derived.Context)
	assert.Equal(t, "fix it", derived.Suggestion)
	require.Error(t, derived.Underlying)

	assert.Empty(t, original.Context)
	assert.Empty(t, original.Suggestion)
	assert.NoError(t, original.Underlying)
}

func TestErrorList(t *testing.T) {
	t.Parallel()

	list := NewErrorList()
	assert.False(t, list.HasErrors())
	assert.NoError(t, list.AsError())
	assert.Empty(t, list.Error())

	list.AddValidation("workspace", "workspace is required", "Set workspace")
	list.Add(nil)
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, "workspace: workspace is required (at workspace)", list.Error())

	list.AddValidation("repository.url", "input cannot be empty", "")
	require.Error(t, list.AsError())
	assert.Contains(t, list.Error(), "2 errors occurred")
	assert.Contains(t, list.Error(), "2. repository.url")

	errs := list.Errors()
	errs[0] = nil
	assert.NotNil(t, list.Errors()[0])
}

func TestNewInvalidConfigError(t *testing.T) {
	t.Parallel()

	problems := NewErrorList()
	problems.AddValidation("repository.url", "input cannot be empty", "Set repository.url")

	err := NewInvalidConfigError("waypoint.yaml", problems)

	assert.Equal(t, ErrCodeConfigInvalid, err.Code)
	assert.Contains(t, err.Message, "repository.url")
	assert.Equal(t, "Set repository.url", err.Suggestion)

	var list *ErrorList
	require.ErrorAs(t, err, &list)
	assert.Equal(t, 1, list.Len())
}

func TestNewStepFailedError(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")
	err := NewStepFailedError("Step 30 (Rewrite dependency manifest)", 20, cause)

	assert.Equal(t, "Step 30 (Rewrite dependency manifest) failed; last completed step: 20", err.Error())
	assert.Contains(t, err.Suggestion, "re-run")
	assert.ErrorIs(t, err, cause)
}

func TestIsUserError(t *testing.T) {
	t.Parallel()

	ue := NewEmptyInputError("project id", nil)
	wrapped := fmt.Errorf("resolve: %w", ue)

	assert.True(t, IsUserError(ue, ErrCodeEmptyInput))
	assert.True(t, IsUserError(wrapped, ErrCodeEmptyInput))
	assert.False(t, IsUserError(ue, ErrCodeConfigParse))
	assert.False(t, IsUserError(errors.New(ue.Error()), ErrCodeEmptyInput))
}

func TestGetUserError(t *testing.T) {
	t.Parallel()

	parse := NewConfigParseError("waypoint.yaml", errors.New("yaml: line 3"))
	got := GetUserError(fmt.Errorf("load: %w", parse))
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeConfigParse, got.Code)

	assert.Nil(t, GetUserError(errors.New("plain")))
}
