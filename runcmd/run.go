// Package runcmd runs the external commands devsetup delegates to. Every
// collaborator process goes through here, so they all get the same logging
// and the same metrics.
package runcmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"go.science.ru.nl/log"
)

// Run executes argv[0] with the remaining arguments and waits for it to
// finish. The command's exit status is propagated in the returned error,
// exec.ExitError and all, so callers inherit the tool's own failure.
func Run(ctx context.Context, argv ...string) error {
	_, err := Output(ctx, argv...)
	return err
}

// Output is Run, but also returns the command's trimmed combined output.
func Output(ctx context.Context, argv ...string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	log.Infof("running %v", cmd.Args)

	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		log.Debug(string(out))
	}
	metricCmdOps.Inc()
	if err != nil {
		metricCmdFail.Inc()
	}
	return bytes.TrimSpace(out), err
}

// Found reports whether an executable named name exists on the search path.
func Found(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
