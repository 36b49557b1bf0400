package main

import (
	"bytes"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the devsetup config file. Everything has a default; a file
// only overrides the commands that differ on a particular machine.
type Config struct {
	ProcMan  ProcMan  `toml:"procman"`
	Database Database `toml:"database"`
	Node     Node     `toml:"node"`
}

// ProcMan describes the process manager the project's Procfile needs.
type ProcMan struct {
	Command string   // binary that must end up on the search path
	Install []string // how to install it when missing
}

// Database holds the collaborator commands that create, migrate and seed the
// development database. Each is a full argv, run as-is.
type Database struct {
	Create  []string
	Migrate []string
	Seed    []string
}

// Node configures the private Node runtime.
type Node struct {
	Dir string // containing directory, defaults to a path under the user cache dir
}

func defaultConfig() Config {
	return Config{
		ProcMan: ProcMan{
			Command: "foreman",
			Install: []string{"gem", "install", "foreman"},
		},
		Database: Database{
			Create:  []string{"sqlx", "database", "create"},
			Migrate: []string{"sqlx", "migrate", "run"},
			Seed:    []string{"cargo", "run", "-p", "seed"},
		},
	}
}

// Valid checks the config in c and returns nil when every collaborator
// command has at least a command name to run.
func (c Config) Valid() error {
	if c.ProcMan.Command == "" {
		return fmt.Errorf("procman: no command name")
	}
	for _, cmd := range []struct {
		name string
		argv []string
	}{
		{"procman install", c.ProcMan.Install},
		{"database create", c.Database.Create},
		{"database migrate", c.Database.Migrate},
		{"database seed", c.Database.Seed},
	} {
		if len(cmd.argv) == 0 {
			return fmt.Errorf("%s: empty command", cmd.name)
		}
	}
	return nil
}

// parseConfig parses doc on top of the defaults. Unknown keys are an error,
// they are almost always a typo of a known one.
func parseConfig(doc []byte) (Config, error) {
	c := defaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, err
	}
	if err := c.Valid(); err != nil {
		return c, err
	}
	return c, nil
}
