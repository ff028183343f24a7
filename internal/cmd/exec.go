// Package cmd provides helpers for executing external commands.
//
// preset shells out to the git and gh CLIs rather than using Go libraries.
// This keeps behavior consistent with user configuration (SSH keys,
// credential helpers, enterprise hosts). The wrappers here capture stderr
// and surface it in the returned error, which the fetch layer relies on
// for error classification.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raphi011/preset/internal/log"
)

// RunContext executes a command in dir (empty = inherited working directory)
// with context cancellation and verbose logging.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return wrapStderr(err, &stderr)
	}
	return nil
}

// OutputContext executes a command in dir with context cancellation and
// verbose logging, returning stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stderr bytes.Buffer
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		return nil, wrapStderr(err, &stderr)
	}
	return out, nil
}

// wrapStderr replaces an opaque exec error with the command's stderr text
// when available, since that is what the user (and the error classifier)
// needs to see.
func wrapStderr(err error, stderr *bytes.Buffer) error {
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}
