package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/raphi011/preset/internal/pointer"
)

// maxErrorBody caps how much of an error response is read for
// classification.
const maxErrorBody = 4 << 10

// fetchHTTP retrieves one file from the host's raw content endpoint.
// Failures are classified from the response status, with the body as a
// tiebreaker (403 means permission denied or rate limiting, and only the
// body says which).
func (f *Fetcher) fetchHTTP(ctx context.Context, ptr pointer.Pointer) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.rawURL(ptr), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		content, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return content, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, classifyStatus(resp.StatusCode, string(body), ptr)
}

// rawURL builds the raw content URL for a pointer. github.com serves raw
// content from a dedicated host; other (enterprise) hosts use an in-path
// raw endpoint.
func (f *Fetcher) rawURL(ptr pointer.Pointer) string {
	_, owner, repo := ptr.Source.Triple()
	file := escapePath(ptr.File)
	if f.baseURL != "" {
		return fmt.Sprintf("%s/%s/%s/%s/%s", f.baseURL, owner, repo, ptr.Revision, file)
	}
	if ptr.Source.Host == "github.com" {
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, ptr.Revision, file)
	}
	return fmt.Sprintf("https://%s/%s/%s/raw/%s/%s", ptr.Source.Host, owner, repo, ptr.Revision, file)
}

func classifyStatus(status int, body string, ptr pointer.Pointer) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, ptr)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrAuthFailed, ptr)
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(body), "rate limit") {
			return fmt.Errorf("%w: %s", ErrRateLimited, ptr)
		}
		return fmt.Errorf("%w: %s", ErrPermissionDenied, ptr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, ptr)
	default:
		return fmt.Errorf("transport error: http %d fetching %s", status, ptr)
	}
}
