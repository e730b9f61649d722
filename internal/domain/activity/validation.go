package activity

import (
	"fmt"
	"strings"
)

// Validate checks that a catalog entry is well formed.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidActivity)
	}
	if strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("%w: %q has no description", ErrInvalidActivity, a.Name)
	}
	if strings.TrimSpace(a.Schedule) == "" {
		return fmt.Errorf("%w: %q has no schedule", ErrInvalidActivity, a.Name)
	}
	if a.MaxParticipants <= 0 {
		return fmt.Errorf("%w: %q max participants must be positive", ErrInvalidActivity, a.Name)
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, email := range a.Participants {
		if email == "" {
			return fmt.Errorf("%w: %q has an empty participant", ErrInvalidActivity, a.Name)
		}
		if _, ok := seen[email]; ok {
			return fmt.Errorf("%w: %q lists %s twice", ErrInvalidActivity, a.Name, email)
		}
		seen[email] = struct{}{}
	}
	return nil
}
