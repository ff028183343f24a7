// Package fetch retrieves preset file content addressed by pointers.
//
// Remote pointers go through an ordered two-transport fallback chain:
// the gh CLI first (it carries the user's authentication and works with
// enterprise hosts), then direct HTTP against the host's raw content
// endpoint, optionally with a bearer token from the environment. A failed
// gh attempt is classified for diagnostics but never stops the chain; the
// HTTP transport is always tried before the fetch is declared failed.
// There is no retry beyond the chain itself.
//
// Local pointers bypass transports entirely and read from the source
// directory on disk.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/raphi011/preset/internal/pointer"
)

// TokenEnvVar names the environment variable holding an optional bearer
// token for the HTTP transport. Absence is not an error; it merely limits
// access to public resources.
const TokenEnvVar = "GITHUB_TOKEN"

// Method records which transport produced a result, for diagnostics.
// It is not part of a preset's identity.
type Method string

const (
	MethodLocal Method = "local"
	MethodGH    Method = "gh"
	MethodHTTP  Method = "http"
)

// Result is one successfully fetched preset.
type Result struct {
	Pointer   pointer.Pointer
	LocalPath string
	Content   []byte
	Method    Method
}

// Fetcher retrieves preset content. The zero value is not usable; use New.
type Fetcher struct {
	token   string
	client  *http.Client
	baseURL string // overrides the raw content URL root; tests only

	ghOnce sync.Once
	ghOK   bool
}

// New creates a Fetcher. token may be empty.
func New(token string) *Fetcher {
	return &Fetcher{
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FromEnv creates a Fetcher with the bearer token from TokenEnvVar.
func FromEnv() *Fetcher {
	return New(os.Getenv(TokenEnvVar))
}

// Fetch retrieves the content addressed by ptr and writes it to dest,
// creating parent directories as needed.
func (f *Fetcher) Fetch(ctx context.Context, ptr pointer.Pointer, dest string) (Result, error) {
	if ptr.Source.Kind == pointer.SourceLocal {
		content, err := readLocal(ctx, ptr)
		if err != nil {
			return Result{}, err
		}
		return f.store(ptr, dest, content, MethodLocal)
	}

	var ghErr error
	if f.ghAvailable(ctx) {
		content, err := f.fetchGH(ctx, ptr)
		if err == nil {
			return f.store(ptr, dest, content, MethodGH)
		}
		ghErr = err
	}

	// The HTTP transport runs regardless of how the gh attempt failed;
	// classification above is for diagnostics, not flow control.
	content, httpErr := f.fetchHTTP(ctx, ptr)
	if httpErr == nil {
		return f.store(ptr, dest, content, MethodHTTP)
	}

	return Result{}, chainError(ghErr, httpErr)
}

// FetchAll retrieves every pointer into its matching destination.
// Destinations are disjoint, so fetches run concurrently; the batch is
// all-or-nothing. On failure every individual cause is reported, and files
// already written by successful siblings stay on disk (they are
// idempotently overwritten on retry).
func (f *Fetcher) FetchAll(ctx context.Context, ptrs []pointer.Pointer, dests []string) ([]Result, error) {
	if len(ptrs) != len(dests) {
		return nil, fmt.Errorf("%w: %d pointers, %d destinations", ErrLengthMismatch, len(ptrs), len(dests))
	}

	results := make([]Result, len(ptrs))
	errs := make([]error, len(ptrs))

	var wg sync.WaitGroup
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.Fetch(ctx, ptrs[i], dests[i])
		}(i)
	}
	wg.Wait()

	var causes []error
	for i, err := range errs {
		if err != nil {
			causes = append(causes, fmt.Errorf("%s: %w", ptrs[i], err))
		}
	}
	if len(causes) > 0 {
		return nil, &BatchError{Causes: causes}
	}
	return results, nil
}

// store writes fetched content to dest and builds the Result.
func (f *Fetcher) store(ptr pointer.Pointer, dest string, content []byte, method Method) (Result, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return Result{}, fmt.Errorf("create preset cache dir: %w", err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return Result{}, fmt.Errorf("write preset: %w", err)
	}
	return Result{Pointer: ptr, LocalPath: dest, Content: content, Method: method}, nil
}

// chainError picks the error to surface after the full fallback chain
// failed: the most specific classified error available, preferring the
// later transport, or a generic exhaustion error wrapping both.
func chainError(ghErr, httpErr error) error {
	if classified(httpErr) {
		return httpErr
	}
	if ghErr != nil && classified(ghErr) {
		return ghErr
	}
	if ghErr == nil {
		return fmt.Errorf("%w: %w", ErrTransportUnavailable, httpErr)
	}
	return fmt.Errorf("%w: %w", ErrTransportUnavailable, errors.Join(ghErr, httpErr))
}
