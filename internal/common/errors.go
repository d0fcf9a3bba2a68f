// Package common defines shared constants and sentinel errors used across
// the Voyage client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Picker / device errors.
	ErrPermissionDenied = errors.New("permission denied")

	// Media processing errors.
	ErrNotAVideo = errors.New("file must be a video")

	// Generic flow control.
	ErrNotFound = errors.New("not found")

	// Session lifecycle errors.
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)
