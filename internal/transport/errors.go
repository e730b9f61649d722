package transport

import (
	"errors"
	"net/http"

	"github.com/mergington/activities/internal/domain/activity"
)

// StatusFor maps a service error to an HTTP status and client-facing detail.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		return http.StatusNotFound, "Activity not found"
	case errors.Is(err, activity.ErrParticipantNotFound):
		return http.StatusNotFound, "Participant not found"
	case errors.Is(err, activity.ErrAlreadySignedUp):
		return http.StatusBadRequest, "Student already signed up for this activity"
	case errors.Is(err, activity.ErrInvalidInput):
		return http.StatusUnprocessableEntity, "email is required"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
