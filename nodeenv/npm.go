package nodeenv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.science.ru.nl/log"
	"golang.org/x/mod/semver"
)

// npmInfo is the part of "npm info --json" output we consume.
type npmInfo struct {
	DistTags struct {
		Latest string `json:"latest"`
	} `json:"dist-tags"`
	Versions []string `json:"versions"`
}

// fetchFlags keep npm's registry traffic from hanging a bootstrap.
var fetchFlags = []string{
	"--fetch-retry-mintimeout", "2000",
	"--fetch-retry-maxtimeout", "5000",
	"--fetch-timeout", "5000",
}

// RunNpm runs an npm subcommand through the private runtime and returns its
// trimmed combined output. The runtime's bin directory is prepended to PATH
// so scripts spawned by npm find our node, not the system one. When dir is
// non-empty npm runs there with --prefix set. A failure to launch gets one
// retry; a non-zero exit is reported with the captured output.
func (r *Runtime) RunNpm(ctx context.Context, dir, subcommand string, args ...string) ([]byte, error) {
	out, err := r.runNpm(ctx, dir, subcommand, args...)
	if err == nil {
		return out, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, fmt.Errorf("failed to execute npm %s subcommand:\n%s", subcommand, out)
	}

	out, err = r.runNpm(ctx, dir, subcommand, args...)
	if err != nil {
		return out, fmt.Errorf("failed to launch npm %s subcommand: %s", subcommand, err)
	}
	return out, nil
}

func (r *Runtime) runNpm(ctx context.Context, dir, subcommand string, args ...string) ([]byte, error) {
	nodeDir, err := r.installIfNeeded(ctx)
	if err != nil {
		return nil, err
	}

	node := filepath.Join(nodeDir, "bin", "node")
	for _, f := range []string{node, filepath.Join(nodeDir, "bin", "npm")} {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("missing %q", f)
		}
	}

	cmd := exec.CommandContext(ctx, node, npmArgs(nodeDir, dir, subcommand, args...)...)
	cmd.Env = []string{"PATH=" + binPath(nodeDir)}
	if dir != "" {
		cmd.Dir = dir
	}
	log.Debugf("running %v", cmd.Args)

	out, err := cmd.CombinedOutput()
	return bytes.TrimSpace(out), err
}

// npmArgs builds the argument list for "node <npm> <subcommand>", pointing
// npm at the runtime's private cache and config files.
func npmArgs(nodeDir, dir, subcommand string, args ...string) []string {
	argv := []string{
		filepath.Join(nodeDir, "bin", "npm"),
		subcommand,
		"--cache", filepath.Join(nodeDir, "cache"),
		"--userconfig", filepath.Join(nodeDir, "blank_user_npmrc"),
		"--globalconfig", filepath.Join(nodeDir, "blank_global_npmrc"),
	}
	argv = append(argv, args...)
	if dir != "" {
		argv = append(argv, "--prefix", dir)
	}
	return argv
}

// binPath returns the runtime's bin directory, followed by the current PATH
// when there is one.
func binPath(nodeDir string) string {
	p := filepath.Join(nodeDir, "bin")
	if existing := os.Getenv("PATH"); existing != "" {
		p += string(os.PathListSeparator) + existing
	}
	return p
}

// PackageLatestVersion asks the npm registry for the newest version of name.
func (r *Runtime) PackageLatestVersion(ctx context.Context, name string) (string, error) {
	args := append([]string{name, "--json"}, fetchFlags...)
	out, err := r.RunNpm(ctx, "", "info", args...)
	if err != nil {
		return "", err
	}

	var info npmInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return "", err
	}
	if info.DistTags.Latest != "" {
		return info.DistTags.Latest, nil
	}
	if len(info.Versions) > 0 {
		return info.Versions[len(info.Versions)-1], nil
	}
	return "", fmt.Errorf("no version found for npm package %q", name)
}

// InstallPackages installs the given name@version pairs in dir, saved with
// their exact versions.
func (r *Runtime) InstallPackages(ctx context.Context, dir string, packages ...string) error {
	args := make([]string, 0, len(packages)+1+len(fetchFlags))
	args = append(args, packages...)
	args = append(args, "--save-exact")
	args = append(args, fetchFlags...)
	_, err := r.RunNpm(ctx, dir, "install", args...)
	return err
}

// ShouldInstallPackage reports whether the package name in dir needs to be
// (re)installed: the executable is missing, the package.json can't be read,
// or the installed version is older than latest. When in doubt we install.
func ShouldInstallPackage(name, executable, dir, latest string) bool {
	if _, err := os.Stat(executable); err != nil {
		return true
	}

	doc, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return true
	}
	var manifest struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(doc, &manifest); err != nil {
		return true
	}
	installed, ok := manifest.Dependencies[name]
	if !ok {
		return true
	}

	// Strip range operators: "^1.2.3" and friends.
	installed = strings.TrimLeftFunc(installed, func(c rune) bool { return c < '0' || c > '9' })
	if !semver.IsValid("v"+installed) || !semver.IsValid("v"+latest) {
		return true
	}
	return semver.Compare("v"+installed, "v"+latest) < 0
}
