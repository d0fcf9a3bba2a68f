package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/logging"
	"github.com/voyageapp/voyage-client/internal/network/endpoints"
)

// PetCreator is the slice of the pets service the registration flow needs.
type PetCreator interface {
	Create(ctx context.Context, req endpoints.CreatePetRequest) (endpoints.Pet, error)
}

// Service walks a draft through the steps and submits it when done.
type Service struct {
	repo Repository
	pets PetCreator
	log  logging.Logger
	now  func() time.Time
}

func NewService(repo Repository, pets PetCreator, log logging.Logger) *Service {
	return &Service{repo: repo, pets: pets, log: log, now: time.Now}
}

// Start creates a fresh draft at the first step.
func (s *Service) Start(ctx context.Context) (*Draft, error) {
	d := NewDraft()
	d.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("start registration: %w", err)
	}
	return d, nil
}

// Resume returns the most recently touched draft, or nil when there is
// nothing to resume.
func (s *Service) Resume(ctx context.Context) (*Draft, error) {
	d, err := s.repo.Latest(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resume registration: %w", err)
	}
	return d, nil
}

// Advance validates the current step's fields and moves the draft to the
// next one. The draft is persisted after every advance so progress survives
// restarts.
func (s *Service) Advance(ctx context.Context, d *Draft) error {
	if d.Complete() {
		return fmt.Errorf("draft already complete")
	}
	if err := validateStep(d, d.Step); err != nil {
		return fmt.Errorf("step %d: %w", d.Step, err)
	}
	d.Step++
	d.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, d); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Update persists field edits without moving the step, for in-place
// corrections.
func (s *Service) Update(ctx context.Context, d *Draft) error {
	d.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, d); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Submit turns a complete draft into a pet and removes the draft. The draft
// survives a failed submission for another attempt.
func (s *Service) Submit(ctx context.Context, d *Draft) (endpoints.Pet, error) {
	if !d.Complete() {
		return endpoints.Pet{}, fmt.Errorf("draft is incomplete: at step %d of %d", d.Step, stepCount)
	}

	pet, err := s.pets.Create(ctx, endpoints.CreatePetRequest{
		Name:       d.Name,
		OwnerTitle: d.OwnerTitle,
		Type:       d.Type,
		Gender:     d.Gender,
		Birthday:   d.Birthday,
		AvatarURL:  d.AvatarURL,
	})
	if err != nil {
		return endpoints.Pet{}, fmt.Errorf("submit registration: %w", err)
	}

	if err := s.repo.Delete(ctx, d.ID); err != nil {
		s.log.Warn(ctx, "registered pet but failed to remove draft", "draft_id", d.ID, "error", err)
	}
	s.log.Info(ctx, "registration complete", "pet_id", pet.ID)
	return pet, nil
}

// Discard deletes a draft without submitting it.
func (s *Service) Discard(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}
