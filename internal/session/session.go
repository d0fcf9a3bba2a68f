// Package session holds the signed-in user's tokens and exposes them to the
// network layer.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyageapp/voyage-client/internal/common"
)

// Session is the credential set returned by the auth endpoints.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}

// Expired reports whether the access token's lifetime has passed. A zero
// ExpiresAt means the expiry is unknown and the session is treated as live.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Provider stores and retrieves the current session. Current returns
// common.ErrNoSession when nobody is signed in.
type Provider interface {
	Current(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// MemoryProvider keeps the session in process memory. Safe for concurrent
// use.
type MemoryProvider struct {
	mu      sync.RWMutex
	current *Session
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

func (p *MemoryProvider) Current(_ context.Context) (*Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil, common.ErrNoSession
	}
	s := *p.current
	return &s, nil
}

func (p *MemoryProvider) Save(_ context.Context, s *Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := *s
	p.current = &copied
	return nil
}

func (p *MemoryProvider) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
	return nil
}

// TokenSource adapts a Provider to the network layer's TokenProvider. A
// missing session yields an empty token so unauthenticated endpoints still
// work; an expired one is reported as an error.
type TokenSource struct {
	Provider Provider
	Now      func() time.Time // nil means time.Now
}

func (t *TokenSource) Token(ctx context.Context) (string, error) {
	s, err := t.Provider.Current(ctx)
	if err != nil {
		return "", nil
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	if s.Expired(now()) {
		return "", common.ErrSessionExpired
	}
	return s.AccessToken, nil
}

// ExpiryFromToken reads the exp claim from an access token without
// verifying the signature. The server is the authority on validity; the
// client only needs the timestamp to know when to refresh.
func ExpiryFromToken(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry")
	}
	return exp.Time, nil
}
