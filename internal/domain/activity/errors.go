package activity

import "errors"

var (
	// ErrActivityNotFound indicates the activity name is not in the catalog.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrParticipantNotFound indicates the email is not on the activity roster.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrAlreadySignedUp indicates the email is already on the activity roster.
	ErrAlreadySignedUp = errors.New("student already signed up for this activity")
	// ErrInvalidInput indicates an enrollment request is missing required fields.
	ErrInvalidInput = errors.New("invalid enrollment input")
	// ErrInvalidActivity indicates a catalog entry fails validation.
	ErrInvalidActivity = errors.New("invalid activity")
)
