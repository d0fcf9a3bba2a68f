// Package pets is the application-facing API for pet records, layered over
// the typed endpoints. It owns cache coherence: mutations invalidate the
// list entries the read side populates.
package pets

import (
	"context"
	"fmt"

	"github.com/voyageapp/voyage-client/internal/logging"
	"github.com/voyageapp/voyage-client/internal/network"
	"github.com/voyageapp/voyage-client/internal/network/endpoints"
)

type Service struct {
	client *network.Client
	log    logging.Logger
}

func NewService(client *network.Client, log logging.Logger) *Service {
	return &Service{client: client, log: log}
}

// List returns the signed-in user's pets, served from cache inside the TTL.
func (s *Service) List(ctx context.Context) ([]endpoints.Pet, error) {
	pets, err := network.Do(ctx, s.client, endpoints.GetPets, struct{}{}, nil)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// Get returns one pet, cached per id.
func (s *Service) Get(ctx context.Context, petID string) (endpoints.Pet, error) {
	pet, err := network.Do(ctx, s.client, endpoints.GetPet, struct{}{}, endpoints.PetCallOptions(petID))
	if err != nil {
		return endpoints.Pet{}, fmt.Errorf("get pet %s: %w", petID, err)
	}
	return pet, nil
}

// Create registers a pet and invalidates the cached list so the next List
// reflects it.
func (s *Service) Create(ctx context.Context, req endpoints.CreatePetRequest) (endpoints.Pet, error) {
	pet, err := network.Do(ctx, s.client, endpoints.CreatePet, req, nil)
	if err != nil {
		return endpoints.Pet{}, fmt.Errorf("create pet: %w", err)
	}
	s.client.RemoveCacheEntry(endpoints.UserPetsCacheKey)
	s.log.Info(ctx, "pet registered", "pet_id", pet.ID, "name", pet.Name)
	return pet, nil
}

// InvalidateList forces the next List to hit the server, e.g. after an
// avatar upload changes a pet's record out of band.
func (s *Service) InvalidateList() {
	s.client.RemoveCacheEntry(endpoints.UserPetsCacheKey)
}
