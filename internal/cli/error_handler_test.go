package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "workclock/internal/errors"
	"workclock/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddInvalidValueError("action", "nap", "must be one of check_in, check_out")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "validation error",
			operation: "check in",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to check in: invalid input",
		},
		{
			name:      "field validation error",
			operation: "record action",
			err:       ve,
			expected:  "failed to record action: action has invalid value: must be one of check_in, check_out",
		},
		{
			name:      "no check-in",
			operation: "check out",
			err:       apperrors.NewNoCheckInError("u1", "2024-01-15"),
			expected:  "failed to check out: No check-in found for today",
		},
		{
			name:      "storage error hides the cause",
			operation: "load history",
			err:       apperrors.NewStorageError("get", stderrors.New("disk full")),
			expected:  "failed to load history: A storage error occurred. Please try again.",
		},
		{
			name:      "plain error",
			operation: "serve",
			err:       stderrors.New("address in use"),
			expected:  "failed to serve: address in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)

			assert.EqualError(t, result, tt.expected)
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	assert.True(t, eh.IsValidationError(apperrors.NewValidationError("bad", nil)))
	assert.True(t, eh.IsValidationError(&validation.ValidationError{}))
	assert.False(t, eh.IsValidationError(stderrors.New("plain")))

	assert.True(t, eh.IsConflictError(apperrors.NewAlreadyCheckedInError("u1", "2024-01-15")))
	assert.False(t, eh.IsConflictError(apperrors.NewNoCheckInError("u1", "2024-01-15")))
}
