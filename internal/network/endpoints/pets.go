// Package endpoints declares the typed API surface: one Endpoint value per
// server operation, with request and response schemas attached.
package endpoints

import (
	"net/http"
	"time"

	"github.com/voyageapp/voyage-client/internal/network"
)

// Pet is the server's representation of a registered pet.
type Pet struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	OwnerTitle string `json:"ownerTitle"`
	Type       string `json:"type" validate:"omitempty,oneof=DOG CAT"`
	Gender     string `json:"gender" validate:"omitempty,oneof=BOY GIRL"`
	Birthday   string `json:"birthday"`
	AvatarURL  string `json:"avatarUrl"`
	CreatedAt  string `json:"createdAt"`
}

// CreatePetRequest is the payload for registering a pet. Field limits match
// the server's contract; validation runs client-side before the request is
// sent.
type CreatePetRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	OwnerTitle string `json:"ownerTitle" validate:"required,min=1,max=50"`
	Type       string `json:"type" validate:"required,oneof=DOG CAT"`
	Gender     string `json:"gender" validate:"required,oneof=BOY GIRL"`
	Birthday   string `json:"birthday" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AvatarURL  string `json:"avatarUrl" validate:"omitempty,url"`
}

const (
	// UserPetsCacheKey caches the signed-in user's pet list.
	UserPetsCacheKey = "user-pets"

	petCacheTTL = 10 * time.Minute
)

// GetPets lists the signed-in user's pets. The response is cached under
// UserPetsCacheKey for the client's default TTL; invalidate it after any
// mutation of the pet list.
var GetPets = network.Endpoint[struct{}, []Pet]{
	Method:         http.MethodGet,
	Path:           "/pet-profile",
	ResponseSchema: network.Struct[[]Pet](),
	CacheKey:       UserPetsCacheKey,
}

// GetPet fetches a single pet. Call it with PetCallOptions so each pet gets
// its own cache entry.
var GetPet = network.Endpoint[struct{}, Pet]{
	Method:         http.MethodGet,
	Path:           "/pet-profile/{petId}",
	ResponseSchema: network.Struct[Pet](),
	CacheTTL:       petCacheTTL,
}

// CreatePet registers a pet. Kept to a small retry budget so a slow server
// does not produce duplicate registrations long after the user gave up.
var CreatePet = network.Endpoint[CreatePetRequest, Pet]{
	Method:         http.MethodPost,
	Path:           "/pet-profile",
	RequestSchema:  network.Struct[CreatePetRequest](),
	ResponseSchema: network.Struct[Pet](),
	MaxRetries:     2,
}

// PetCacheKey is the per-pet cache entry name.
func PetCacheKey(petID string) string {
	return "pet-" + petID
}

// PetCallOptions binds a pet id to both the path template and the cache key.
func PetCallOptions(petID string) *network.CallOptions {
	return &network.CallOptions{
		PathParams: map[string]string{"petId": petID},
		CacheKey:   PetCacheKey(petID),
	}
}
