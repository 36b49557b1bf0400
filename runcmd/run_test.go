package runcmd

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"go.science.ru.nl/log"
)

func TestOutput(t *testing.T) {
	log.Discard()
	out, err := Output(context.TODO(), "echo", "hello")
	if err != nil {
		t.Fatalf("failed to run echo: %s", err)
	}
	if string(out) != "hello" {
		t.Errorf("Output() = %q, want %q", out, "hello")
	}
}

func TestRunPropagatesExitStatus(t *testing.T) {
	log.Discard()
	err := Run(context.TODO(), "false")
	if err == nil {
		t.Fatal("expected an error from false")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() = %v, want an exec.ExitError", err)
	}
	if exitErr.ExitCode() == 0 {
		t.Error("exit code should be non-zero")
	}
}

func TestRunEmptyCommand(t *testing.T) {
	log.Discard()
	if err := Run(context.TODO()); err == nil {
		t.Fatal("expected an error for an empty command")
	}
}

func TestFound(t *testing.T) {
	if !Found("echo") {
		t.Error("expected to find echo on the search path")
	}
	if Found("definitely-not-a-real-command") {
		t.Error("found an executable that should not exist")
	}
}
