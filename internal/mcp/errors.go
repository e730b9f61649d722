package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mergington/activities/internal/domain/activity"
)

// APIError is the error reported back to MCP clients as a tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: "Activity not found", RecoveryHint: "Call list_activities for valid names"}
	case errors.Is(err, activity.ErrParticipantNotFound):
		return &APIError{Code: "PARTICIPANT_NOT_FOUND", Message: "Participant not found", RecoveryHint: "Check the roster with get_activity"}
	case errors.Is(err, activity.ErrAlreadySignedUp):
		return &APIError{Code: "ALREADY_SIGNED_UP", Message: "Student already signed up for this activity"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "email is required"}
	default:
		return nil
	}
}

// toolError converts a service error into the error returned from a tool
// handler. Unexpected errors are logged and hidden from the client.
func toolError(ctx context.Context, logger *slog.Logger, tool string, err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	logger.ErrorContext(ctx, "tool failed", "tool", tool, "error", err)
	return &APIError{Code: "INTERNAL", Message: "internal error"}
}
