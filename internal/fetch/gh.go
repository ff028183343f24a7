package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"strings"

	"github.com/raphi011/preset/internal/cmd"
	"github.com/raphi011/preset/internal/pointer"
)

// ghAvailable probes the gh CLI once per Fetcher: it must be in PATH and
// answer a version query. An unauthenticated gh still counts as available;
// authentication problems surface as classified fetch errors instead.
func (f *Fetcher) ghAvailable(ctx context.Context) bool {
	f.ghOnce.Do(func() {
		if _, err := exec.LookPath("gh"); err != nil {
			return
		}
		f.ghOK = cmd.RunContext(ctx, "", "gh", "--version") == nil
	})
	return f.ghOK
}

// fetchGH retrieves one file through the gh CLI's API wrapper.
func (f *Fetcher) fetchGH(ctx context.Context, ptr pointer.Pointer) ([]byte, error) {
	host, owner, repo := ptr.Source.Triple()

	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s?ref=%s",
		owner, repo, escapePath(ptr.File), url.QueryEscape(ptr.Revision))

	args := []string{"api", endpoint, "-H", "Accept: application/vnd.github.raw+json"}
	if host != "github.com" {
		args = append(args, "--hostname", host)
	}

	out, err := cmd.OutputContext(ctx, "", "gh", args...)
	if err != nil {
		return nil, Classify(err.Error())
	}
	return out, nil
}

// escapePath escapes each segment of a slash-separated repository path so
// names with spaces or URL metacharacters build a valid endpoint.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// treeResponse is the subset of the git tree API response the lister needs.
type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
		Size int64  `json:"size"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// List enumerates the preset documents available in a hosted repository at
// the given revision. Entry IDs are real content hashes (git blob SHAs),
// unlike the placeholder IDs of local scans.
//
// Listing requires the gh CLI; unlike Fetch there is no HTTP fallback,
// since the raw content endpoints cannot enumerate directories.
func (f *Fetcher) List(ctx context.Context, src pointer.Source, revision string) ([]Entry, error) {
	if src.Kind == pointer.SourceLocal {
		return Scan(ctx, src.Path)
	}
	if !f.ghAvailable(ctx) {
		return nil, fmt.Errorf("%w: gh CLI required to list %s", ErrTransportUnavailable, src)
	}

	if revision == "" {
		revision = pointer.RevisionHead
	}

	endpoint := fmt.Sprintf("repos/%s/%s/git/trees/%s?recursive=1",
		src.Owner, src.Repo, url.QueryEscape(revision))

	args := []string{"api", endpoint}
	if src.Host != "github.com" {
		args = append(args, "--hostname", src.Host)
	}

	out, err := cmd.OutputContext(ctx, "", "gh", args...)
	if err != nil {
		return nil, Classify(err.Error())
	}

	var tree treeResponse
	if err := json.Unmarshal(out, &tree); err != nil {
		return nil, fmt.Errorf("parse tree listing for %s: %w", src, err)
	}

	var entries []Entry
	for _, item := range tree.Tree {
		if item.Type != "blob" || !strings.HasSuffix(item.Path, presetExtension) {
			continue
		}
		entries = append(entries, Entry{
			Name: path.Base(item.Path),
			Path: item.Path,
			Size: item.Size,
			ID:   item.SHA,
		})
	}
	return entries, nil
}
