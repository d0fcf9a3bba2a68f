package network

import (
	"errors"
	"fmt"
)

// Error is the structured failure returned for any request that reached the
// server and came back with a non-2xx status, or whose payload failed
// validation. StatusCode is zero for failures that never produced an HTTP
// response.
type Error struct {
	Message    string
	StatusCode int
	Code       string
	Details    map[string]any
}

// CodeNoResponse marks errors where the request never produced an HTTP
// response: DNS failures, refused connections, timeouts.
const CodeNoResponse = "NO_RESPONSE"

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Category is the coarse classification callers use to decide how to react:
// prompt for sign-in, show a permission message, suggest retrying, and so on.
type Category string

const (
	CategoryAuthRequired     Category = "auth_required"
	CategoryPermissionDenied Category = "permission_denied"
	CategoryServer           Category = "server"
	CategoryConnectivity     Category = "connectivity"
	CategoryClient           Category = "client"
)

// Categorize maps an error returned by this package to its Category.
// Validation failures and transport-level errors both land in categories a
// caller can act on without unwrapping.
func Categorize(err error) Category {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return CategoryClient
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return CategoryConnectivity
	}

	switch {
	case apiErr.StatusCode == 401:
		return CategoryAuthRequired
	case apiErr.StatusCode == 403:
		return CategoryPermissionDenied
	case apiErr.StatusCode >= 500:
		return CategoryServer
	case apiErr.StatusCode == 0:
		return CategoryConnectivity
	default:
		return CategoryClient
	}
}

// Statuses that indicate a deterministic outcome: repeating the request
// cannot change the answer, so the retry loop gives up immediately.
var noRetryStatuses = map[int]struct{}{
	401: {},
	403: {},
	404: {},
	422: {},
}

func retryableStatus(code int) bool {
	_, fixed := noRetryStatuses[code]
	return !fixed
}
