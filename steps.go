package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/devsetup/devsetup/nodeenv"
	"github.com/devsetup/devsetup/ospkg"
	"github.com/devsetup/devsetup/runcmd"
	"go.science.ru.nl/log"
)

// A step is one stage of the bootstrap. Steps run sequentially and the first
// failure aborts the run.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// bootstrapSteps returns the full bootstrap: process manager, database,
// native dependencies (Linux hosts only) and the Node runtime.
func bootstrapSteps(c Config) []step {
	steps := []step{
		{"procman", func(ctx context.Context) error { return installProcMan(ctx, c.ProcMan) }},
	}
	steps = append(steps, dbSteps(c)...)
	if runtime.GOOS == "linux" {
		steps = append(steps, step{"deps", installDeps})
	}
	steps = append(steps, step{"node", func(ctx context.Context) error { return installNode(ctx, c.Node) }})
	return steps
}

func dbSteps(c Config) []step {
	return []step{
		{"db-create", func(ctx context.Context) error { return runcmd.Run(ctx, c.Database.Create...) }},
		{"db-migrate", func(ctx context.Context) error { return runcmd.Run(ctx, c.Database.Migrate...) }},
		{"db-seed", func(ctx context.Context) error { return runcmd.Run(ctx, c.Database.Seed...) }},
	}
}

func runSteps(ctx context.Context, steps []step) error {
	for _, s := range steps {
		log.Infof("Step %q", s.name)
		if err := s.run(ctx); err != nil {
			metricStepFail.WithLabelValues(s.name).Inc()
			return fmt.Errorf("step %q: %w", s.name, err)
		}
		metricStepOk.WithLabelValues(s.name).Inc()
	}
	return nil
}

func installProcMan(ctx context.Context, pm ProcMan) error {
	if runcmd.Found(pm.Command) {
		log.Infof("%q already installed", pm.Command)
		return nil
	}
	return runcmd.Run(ctx, pm.Install...)
}

// installDeps runs the package-manager dispatcher. An unsupported
// distribution is logged and skipped, matching the original bootstrap
// script; the build downstream will complain when something really is
// missing.
func installDeps(ctx context.Context) error {
	err := ospkg.New().Install(ctx)
	if errors.Is(err, ospkg.ErrUnsupported) {
		log.Warningf("%s, skipping native dependencies", err)
		return nil
	}
	return err
}

func installNode(ctx context.Context, n Node) error {
	rt, err := nodeenv.New(n.Dir)
	if err != nil {
		return err
	}
	bin, err := rt.BinaryPath(ctx)
	if err != nil {
		return err
	}
	log.Infof("Node runtime at %q", bin)
	return nil
}
