// Package git provides the version-control primitives preset needs, via
// shell commands.
//
// Operations call the git CLI through the cmd package rather than a Go
// git library, which keeps behavior aligned with the user's own git
// configuration (credential helpers, SSH settings, worktrees).
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raphi011/preset/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH.
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// ErrNoOriginRemote indicates the repository has no origin remote.
var ErrNoOriginRemote = errors.New("repository has no origin remote")

// ErrOriginHasNoURL indicates the origin remote exists but carries no URL.
var ErrOriginHasNoURL = errors.New("origin remote has no URL")

// CheckGit verifies that git is available in PATH.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsRepository returns true if path is inside a git work tree.
func IsRepository(ctx context.Context, path string) bool {
	return run(ctx, path, "rev-parse", "--is-inside-work-tree") == nil
}

// GetOriginURL returns the URL of the origin remote for the repository at
// path.
func GetOriginURL(ctx context.Context, path string) (string, error) {
	out, err := output(ctx, path, "remote", "get-url", "origin")
	if err != nil {
		if strings.Contains(err.Error(), "No such remote") {
			return "", ErrNoOriginRemote
		}
		return "", fmt.Errorf("get origin URL: %w", err)
	}

	url := strings.TrimSpace(string(out))
	if url == "" {
		return "", ErrOriginHasNoURL
	}
	return url, nil
}

// gitArgs prepends -C <dir> when dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

func run(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

func output(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}
