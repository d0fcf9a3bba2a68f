// Package registration persists in-progress pet registrations so a user can
// leave the multi-step flow and pick it up later, then completes them
// against the pets API.
package registration

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Steps of the registration flow, in order. A draft at StepName has nothing
// filled in yet; a draft past StepAvatar is ready to submit.
const (
	StepName = iota + 1
	StepOwnerTitle
	StepTypeGender
	StepBirthday
	StepAvatar

	stepCount = StepAvatar
)

// Draft is a partially completed registration. Fields beyond the current
// step are empty.
type Draft struct {
	ID         string
	Step       int
	Name       string
	OwnerTitle string
	Type       string
	Gender     string
	Birthday   string // RFC3339
	AvatarPath string // object-storage path of the uploaded avatar
	AvatarURL  string
	UpdatedAt  time.Time
}

func NewDraft() *Draft {
	return &Draft{
		ID:   uuid.NewString(),
		Step: StepName,
	}
}

// Complete reports whether every step has been filled in.
func (d *Draft) Complete() bool {
	return d.Step > stepCount
}

// validateStep checks that the fields a step collects are present before the
// draft moves past it. The avatar step is optional.
func validateStep(d *Draft, step int) error {
	switch step {
	case StepName:
		if d.Name == "" {
			return fmt.Errorf("name is required")
		}
	case StepOwnerTitle:
		if d.OwnerTitle == "" {
			return fmt.Errorf("owner title is required")
		}
	case StepTypeGender:
		if d.Type != "DOG" && d.Type != "CAT" {
			return fmt.Errorf("type must be DOG or CAT")
		}
		if d.Gender != "BOY" && d.Gender != "GIRL" {
			return fmt.Errorf("gender must be BOY or GIRL")
		}
	case StepBirthday:
		if _, err := time.Parse(time.RFC3339, d.Birthday); err != nil {
			return fmt.Errorf("birthday must be a valid timestamp: %w", err)
		}
	case StepAvatar:
		// optional
	default:
		return fmt.Errorf("unknown step %d", step)
	}
	return nil
}
