package advisor

import (
	"errors"
	"fmt"
)

// Unrecoverable advisory failure classes. The HTTP layer maps these so a
// client can tell "try again" from "feature unavailable" from "bad input".
var (
	ErrNoResponse         = errors.New("advisor: inference service returned no choices")
	ErrEmptyContent       = errors.New("advisor: inference service returned empty content")
	ErrMalformedJSON      = errors.New("advisor: inference response is not valid JSON")
	ErrRateLimitExhausted = errors.New("advisor: rate limited and retry attempts exhausted")
	ErrServiceUnavailable = errors.New("advisor: inference service unavailable")
	ErrImageFormat        = errors.New("advisor: image reference is not usable")
)

// MalformedResultError reports a structured response missing a required
// field for its task. Never defaulted, always surfaced.
type MalformedResultError struct {
	Kind  Kind
	Field string
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("advisor: incomplete %s result: missing required field %q", e.Kind, e.Field)
}
