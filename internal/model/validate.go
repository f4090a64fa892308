package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks input rejected before any store call.
var ErrValidation = errors.New("validation failed")

// ValidateParticipant checks a participant record locally.  Invalid
// records are never sent to the store and never retried.
func ValidateParticipant(p Participant) error {
	if strings.TrimSpace(p.ID) == "" && strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: participant needs an id or a name", ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: participant name is required", ErrValidation)
	}
	if p.Count < 1 {
		return fmt.Errorf("%w: participant count must be at least 1", ErrValidation)
	}
	if p.ChildCount < 0 || p.ChildCount > p.Count {
		return fmt.Errorf("%w: child count must be between 0 and the participant count", ErrValidation)
	}
	return nil
}
