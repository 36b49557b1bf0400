package nodeenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNpmArgs(t *testing.T) {
	got := npmArgs("/nd", "", "info", "prettier", "--json")
	want := []string{
		"/nd/bin/npm", "info",
		"--cache", "/nd/cache",
		"--userconfig", "/nd/blank_user_npmrc",
		"--globalconfig", "/nd/blank_global_npmrc",
		"prettier", "--json",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("npmArgs without a directory:\n%s", diff)
	}

	got = npmArgs("/nd", "/work", "install", "prettier@2.8.0")
	want = []string{
		"/nd/bin/npm", "install",
		"--cache", "/nd/cache",
		"--userconfig", "/nd/blank_user_npmrc",
		"--globalconfig", "/nd/blank_global_npmrc",
		"prettier@2.8.0",
		"--prefix", "/work",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("npmArgs with a directory:\n%s", diff)
	}
}

func TestShouldInstallPackage(t *testing.T) {
	dir := t.TempDir()
	executable := filepath.Join(dir, "node_modules", ".bin", "prettier")

	// No executable at all.
	if !ShouldInstallPackage("prettier", executable, dir, "2.8.0") {
		t.Error("missing executable should mean install")
	}

	if err := os.MkdirAll(filepath.Dir(executable), 0775); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(executable, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	// Executable but no package.json.
	if !ShouldInstallPackage("prettier", executable, dir, "2.8.0") {
		t.Error("unreadable manifest should mean install")
	}

	manifest := func(version string) {
		doc := []byte(`{"dependencies": {"prettier": "` + version + `"}}`)
		if err := os.WriteFile(filepath.Join(dir, "package.json"), doc, 0664); err != nil {
			t.Fatal(err)
		}
	}

	manifest("2.7.1")
	if !ShouldInstallPackage("prettier", executable, dir, "2.8.0") {
		t.Error("older installed version should mean install")
	}

	manifest("^2.8.0")
	if ShouldInstallPackage("prettier", executable, dir, "2.8.0") {
		t.Error("current installed version should not mean install")
	}

	manifest("3.0.0")
	if ShouldInstallPackage("prettier", executable, dir, "2.8.0") {
		t.Error("newer installed version should not mean install")
	}

	manifest("not-a-version")
	if !ShouldInstallPackage("prettier", executable, dir, "2.8.0") {
		t.Error("unparseable installed version should mean install")
	}
}
