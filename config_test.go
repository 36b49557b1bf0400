package main

import (
	"testing"
)

func TestValidConfig(t *testing.T) {
	const conf = `
[procman]
command = "overmind"
install = ["brew", "install", "overmind"]

[database]
create = ["createdb", "dev"]
migrate = ["dbmate", "up"]
`
	c, err := parseConfig([]byte(conf))
	if err != nil {
		t.Fatalf("expected to parse config, but got: %s", err)
	}
	if c.ProcMan.Command != "overmind" {
		t.Errorf("procman command = %q, want %q", c.ProcMan.Command, "overmind")
	}
	if c.Database.Create[0] != "createdb" {
		t.Errorf("database create = %v, want it to start with createdb", c.Database.Create)
	}
	// Sections that are not mentioned keep their defaults.
	if len(c.Database.Seed) == 0 || c.Database.Seed[0] != "cargo" {
		t.Errorf("database seed = %v, want the default", c.Database.Seed)
	}
}

func TestEmptyCommandConfig(t *testing.T) {
	const conf = `
[database]
create = []
`
	if _, err := parseConfig([]byte(conf)); err == nil {
		t.Fatalf("expected an empty command list to be rejected, but got nil error")
	}
}

func TestInvalidConfig(t *testing.T) {
	const conf = `
[procman]
kommand = "foreman"
`
	if _, err := parseConfig([]byte(conf)); err == nil {
		t.Fatalf("expected to fail to parse config, but got nil error")
	}
}
