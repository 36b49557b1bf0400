// Package nodeenv manages a private Node.js runtime for devsetup. The
// runtime lives in its own directory with its own npm cache and npm config
// files, so it never fights with whatever node the developer already has.
package nodeenv

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.science.ru.nl/log"
)

// Version is the Node release we pin to.
const Version = "v18.15.0"

const distURL = "https://nodejs.org/dist"

// Runtime is a Node installation rooted in a containing directory. The zero
// value is not usable, use New.
type Runtime struct {
	dir    string
	client *http.Client
}

// New returns a Runtime rooted in dir. With an empty dir the runtime lives
// under the user cache directory.
func New(dir string) (*Runtime, error) {
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(cache, "devsetup", "node")
	}
	return &Runtime{dir: dir, client: &http.Client{}}, nil
}

// folderName returns the name of the Node release directory for this OS and
// architecture, e.g. node-v18.15.0-linux-x64. The same name plus .tar.gz is
// the upstream archive name.
func folderName() (string, error) {
	var o string
	switch runtime.GOOS {
	case "darwin":
		o = "darwin"
	case "linux":
		o = "linux"
	case "windows":
		o = "win"
	default:
		return "", fmt.Errorf("running on unsupported os: %s", runtime.GOOS)
	}
	var a string
	switch runtime.GOARCH {
	case "amd64":
		a = "x64"
	case "arm64":
		a = "arm64"
	default:
		return "", fmt.Errorf("running on unsupported architecture: %s", runtime.GOARCH)
	}
	return fmt.Sprintf("node-%s-%s-%s", Version, o, a), nil
}

// BinaryPath installs the runtime when needed and returns the path of the
// node binary.
func (r *Runtime) BinaryPath(ctx context.Context) (string, error) {
	dir, err := r.installIfNeeded(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bin", "node"), nil
}

// installIfNeeded checks the current installation by running
// "node npm --version" against the private npm config. When that fails the
// containing directory is wiped and the pinned release is downloaded and
// unpacked again.
func (r *Runtime) installIfNeeded(ctx context.Context) (string, error) {
	folder, err := folderName()
	if err != nil {
		return "", err
	}
	nodeDir := filepath.Join(r.dir, folder)

	if !r.valid(ctx, nodeDir) {
		os.RemoveAll(r.dir)
		if err := os.MkdirAll(r.dir, 0775); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %s", r.dir, err)
		}
		if err := r.download(ctx, folder+".tar.gz"); err != nil {
			return "", err
		}
	}

	// Populate these for existing installations too.
	os.MkdirAll(filepath.Join(nodeDir, "cache"), 0775)
	os.WriteFile(filepath.Join(nodeDir, "blank_user_npmrc"), nil, 0664)
	os.WriteFile(filepath.Join(nodeDir, "blank_global_npmrc"), nil, 0664)

	return nodeDir, nil
}

func (r *Runtime) valid(ctx context.Context, nodeDir string) bool {
	cmd := exec.CommandContext(ctx, filepath.Join(nodeDir, "bin", "node"),
		filepath.Join(nodeDir, "bin", "npm"), "--version",
		"--cache", filepath.Join(nodeDir, "cache"),
		"--userconfig", filepath.Join(nodeDir, "blank_user_npmrc"),
		"--globalconfig", filepath.Join(nodeDir, "blank_global_npmrc"))
	cmd.Env = []string{}
	return cmd.Run() == nil
}

func (r *Runtime) download(ctx context.Context, file string) error {
	url := distURL + "/" + Version + "/" + file
	log.Infof("Downloading %q", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("error downloading node tarball: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error downloading node tarball: %s", resp.Status)
	}
	return untar(resp.Body, r.dir)
}

// untar unpacks the gzipped tarball read from r into dir. Entries that would
// escape dir are an error.
func untar(r io.Reader, dir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		name := filepath.Join(dir, filepath.FromSlash(hdr.Name))
		if !strings.HasPrefix(name, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("tar entry %q escapes %q", hdr.Name, dir)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(name, 0775); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return fmt.Errorf("tar entry %q links to absolute path %q", hdr.Name, hdr.Linkname)
			}
			target := filepath.Join(filepath.Dir(name), filepath.FromSlash(hdr.Linkname))
			if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
				return fmt.Errorf("tar entry %q links outside %q", hdr.Name, dir)
			}
			os.Remove(name)
			if err := os.Symlink(hdr.Linkname, name); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(name), 0775); err != nil {
				return err
			}
			f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode)&0777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			f.Close()
		}
	}
}
