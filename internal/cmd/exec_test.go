package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/raphi011/preset/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext_Success(t *testing.T) {
	t.Parallel()
	if err := RunContext(logCtx(), "", "echo", "hello"); err != nil {
		t.Errorf("RunContext(echo hello) = %v, want nil", err)
	}
}

func TestRunContext_Failure(t *testing.T) {
	t.Parallel()
	if err := RunContext(logCtx(), "", "sh", "-c", "exit 1"); err == nil {
		t.Error("RunContext(exit 1) = nil, want error")
	}
}

func TestRunContext_StderrMessage(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}
	if err.Error() != "bad thing" {
		t.Errorf("RunContext error = %q, want %q", err.Error(), "bad thing")
	}
}

func TestOutputContext_ReturnsStdout(t *testing.T) {
	t.Parallel()
	out, err := OutputContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Fatalf("OutputContext = %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Errorf("OutputContext stdout = %q", out)
	}
}

func TestOutputContext_StderrMessage(t *testing.T) {
	t.Parallel()
	_, err := OutputContext(logCtx(), "", "sh", "-c", "echo 'not found' >&2; exit 1")
	if err == nil {
		t.Fatal("OutputContext = nil, want error")
	}
	if err.Error() != "not found" {
		t.Errorf("OutputContext error = %q, want stderr text", err.Error())
	}
}

func TestRunContext_VerboseEcho(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))

	if err := RunContext(ctx, "", "echo", "hi"); err != nil {
		t.Fatalf("RunContext = %v", err)
	}
	if got := buf.String(); got != "$ echo hi\n" {
		t.Errorf("verbose echo = %q", got)
	}
}

func TestRunContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	if err := RunContext(ctx, "", "sleep", "10"); err == nil {
		t.Error("RunContext with cancelled context = nil, want error")
	}
}
