package endpoints

import (
	"net/http"

	"github.com/voyageapp/voyage-client/internal/network"
)

// RequestEmailCodeRequest asks the server to mail a one-time sign-in code.
type RequestEmailCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestEmailCodeResponse acknowledges the code was sent.
type RequestEmailCodeResponse struct {
	Sent bool `json:"sent"`
}

// VerifyEmailCodeRequest exchanges an emailed code for a session.
type VerifyEmailCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"token" validate:"required,len=6,numeric"`
}

// AuthUser identifies the account a session belongs to.
type AuthUser struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// SessionResponse carries the tokens issued on successful verification.
type SessionResponse struct {
	AccessToken  string   `json:"accessToken" validate:"required"`
	RefreshToken string   `json:"refreshToken"`
	User         AuthUser `json:"user"`
}

// RequestEmailCode runs before any session exists, so it skips auth.
var RequestEmailCode = network.Endpoint[RequestEmailCodeRequest, RequestEmailCodeResponse]{
	Method:         http.MethodPost,
	Path:           "/auth/otp",
	RequestSchema:  network.Struct[RequestEmailCodeRequest](),
	ResponseSchema: network.Struct[RequestEmailCodeResponse](),
	SkipAuth:       true,
}

// VerifyEmailCode exchanges the emailed code for tokens. Not retried: a code
// is single-use, so a replayed verification can only fail.
var VerifyEmailCode = network.Endpoint[VerifyEmailCodeRequest, SessionResponse]{
	Method:         http.MethodPost,
	Path:           "/auth/verify",
	RequestSchema:  network.Struct[VerifyEmailCodeRequest](),
	ResponseSchema: network.Struct[SessionResponse](),
	SkipAuth:       true,
	NoRetry:        true,
}
