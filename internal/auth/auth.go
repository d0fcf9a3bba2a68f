// Package auth implements passwordless email-code sign-in.
package auth

import (
	"context"
	"fmt"

	"github.com/voyageapp/voyage-client/internal/logging"
	"github.com/voyageapp/voyage-client/internal/network"
	"github.com/voyageapp/voyage-client/internal/network/endpoints"
	"github.com/voyageapp/voyage-client/internal/session"
)

// Service drives the two-step sign-in flow: request a code by email, then
// exchange it for a session.
type Service struct {
	client   *network.Client
	sessions session.Provider
	log      logging.Logger
}

func NewService(client *network.Client, sessions session.Provider, log logging.Logger) *Service {
	return &Service{client: client, sessions: sessions, log: log}
}

// RequestCode asks the server to email a one-time sign-in code.
func (s *Service) RequestCode(ctx context.Context, email string) error {
	_, err := network.Do(ctx, s.client, endpoints.RequestEmailCode,
		endpoints.RequestEmailCodeRequest{Email: email}, nil)
	if err != nil {
		return fmt.Errorf("request code: %w", err)
	}
	s.log.Info(ctx, "sign-in code requested", "email", email)
	return nil
}

// VerifyCode exchanges the emailed code for tokens and stores the resulting
// session. The access token's expiry is read from its exp claim; a token
// without one produces a session with unknown expiry.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (*session.Session, error) {
	res, err := network.Do(ctx, s.client, endpoints.VerifyEmailCode,
		endpoints.VerifyEmailCodeRequest{Email: email, Code: code}, nil)
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}

	sess := &session.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		UserID:       res.User.ID,
		Email:        res.User.Email,
	}
	if exp, err := session.ExpiryFromToken(res.AccessToken); err == nil {
		sess.ExpiresAt = exp
	} else {
		s.log.Warn(ctx, "access token has no readable expiry", "error", err)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.log.Info(ctx, "signed in", "user_id", sess.UserID)
	return sess, nil
}

// SignOut drops the stored session and every cached response.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.client.ClearCache()
	return nil
}
