// Package ospkg installs the native libraries the main project needs to
// build, using whichever supported package manager the host has.
package ospkg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/devsetup/devsetup/osutil"
	"github.com/devsetup/devsetup/runcmd"
	"go.science.ru.nl/log"
)

// ErrUnsupported is returned when none of the known package managers exist
// on the host. It is a diagnostic, not an install failure: nothing was run.
var ErrUnsupported = errors.New("unsupported distribution")

// Installer probes the host for a package manager and runs that manager's
// install invocation. LookPath and Run exist so tests can fake the search
// path and the invocation; New fills in the real ones.
type Installer struct {
	LookPath func(file string) (string, error)
	Run      func(ctx context.Context, argv ...string) error
}

// New returns an Installer wired to the real search path and command runner.
func New() *Installer {
	return &Installer{LookPath: exec.LookPath, Run: runcmd.Run}
}

// Escalator returns the privilege escalation prefix to use: sudo when
// available, doas as a fallback, or nothing when neither exists (then we
// assume we already are root, e.g. inside a container).
func (in *Installer) Escalator() string {
	for _, name := range []string{"sudo", "doas"} {
		if _, err := in.LookPath(name); err == nil {
			return name
		}
	}
	return ""
}

// Detect returns the first profile whose package manager is on the search path.
func (in *Installer) Detect() (Profile, bool) {
	for _, p := range profiles {
		if _, err := in.LookPath(p.Command); err == nil {
			return p, true
		}
	}
	return Profile{}, false
}

// Install detects the host's package manager and installs that profile's
// package list in a single non-interactive invocation. A failing install
// propagates the package manager's error unrecovered and no other manager is
// tried. When no manager is found ErrUnsupported is returned, naming the
// os-release ID when we have one, and nothing is invoked.
func (in *Installer) Install(ctx context.Context) error {
	p, ok := in.Detect()
	if !ok {
		if id := osutil.ID(); id != "" {
			return fmt.Errorf("%w: %s", ErrUnsupported, id)
		}
		return ErrUnsupported
	}

	argv := []string{}
	if e := in.Escalator(); e != "" {
		argv = append(argv, e)
	}
	argv = append(argv, p.Command)
	argv = append(argv, p.Args...)
	argv = append(argv, p.Packages...)

	log.Infof("Installing %d packages with %q", len(p.Packages), p.Command)
	return in.Run(ctx, argv...)
}
