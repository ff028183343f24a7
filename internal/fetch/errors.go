package fetch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLengthMismatch indicates FetchAll was called with pointer and
	// destination lists of different lengths.
	ErrLengthMismatch = errors.New("pointer and destination counts differ")

	// ErrNotFound indicates the repository or file does not exist, or the
	// caller has no access to it. Hosting providers intentionally return
	// the same answer for both cases.
	ErrNotFound = errors.New("repository or file not found (or no access)")

	// ErrAuthFailed indicates the transport rejected the provided
	// credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrPermissionDenied indicates valid credentials without sufficient
	// access.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRateLimited indicates the hosting provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransportUnavailable indicates every transport in the fallback
	// chain failed without a more specific classification.
	ErrTransportUnavailable = errors.New("no transport could retrieve the preset")
)

// BatchError aggregates every individual failure of a batch fetch.
// A batch is all-or-nothing; callers receive either a full result set or
// the complete list of causes.
type BatchError struct {
	Causes []error
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Causes))
	for i, err := range e.Causes {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d preset fetch(es) failed:\n  %s", len(e.Causes), strings.Join(msgs, "\n  "))
}

// Unwrap exposes the individual causes to errors.Is/As.
func (e *BatchError) Unwrap() []error {
	return e.Causes
}

// Classify maps raw transport error text to the fetch error taxonomy.
//
// The gh CLI reports failures as prose, so this is substring matching by
// necessity. Transports with structured status codes (the HTTP path)
// classify from the status directly and only fall back to this for
// response bodies. Classification is diagnostic only; it never decides
// whether the fallback chain continues.
func Classify(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate limit"):
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case strings.Contains(lower, "404") || strings.Contains(lower, "not found"):
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case strings.Contains(lower, "401") || strings.Contains(lower, "authentication") || strings.Contains(lower, "bad credentials"):
		return fmt.Errorf("%w: %s", ErrAuthFailed, msg)
	case strings.Contains(lower, "403") || strings.Contains(lower, "permission denied") || strings.Contains(lower, "forbidden"):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, msg)
	default:
		return fmt.Errorf("transport error: %s", msg)
	}
}

// classified reports whether err carries one of the specific taxonomy
// sentinels (as opposed to a generic transport failure).
func classified(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAuthFailed) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrRateLimited)
}
