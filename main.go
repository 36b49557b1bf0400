package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/devsetup/devsetup/ospkg"
	"github.com/devsetup/devsetup/osutil"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"go.science.ru.nl/log"
)

func main() {
	conf := defaultConfig()

	app := &cli.App{
		Name:  "devsetup",
		Usage: "bootstrap this machine for development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file to read"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
			&cli.StringFlag{Name: "metrics", Aliases: []string{"m"}, Usage: "address to serve /metrics on while running"},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("debug") {
				log.D.Set()
			}
			if path := ctx.String("config"); path != "" {
				doc, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				c, err := parseConfig(doc)
				if err != nil {
					return fmt.Errorf("the configuration is not valid: %s", err)
				}
				conf = c
			}
			if addr := ctx.String("metrics"); addr != "" {
				serveMetrics(addr)
			}
			return nil
		},
		Action: func(ctx *cli.Context) error {
			log.Infof("Bootstrapping %q (%s, %q)", osutil.Hostname(), runtime.GOOS, osutil.ID())
			return runSteps(signalContext(), bootstrapSteps(conf))
		},
		Commands: []*cli.Command{
			{
				Name:    "deps",
				Aliases: []string{"dep"},
				Usage:   "install native build dependencies with the host's package manager",
				Action: func(ctx *cli.Context) error {
					err := ospkg.New().Install(signalContext())
					if errors.Is(err, ospkg.ErrUnsupported) {
						// The original bootstrap script falls through
						// here as well, so keep exiting 0.
						log.Warningf("%s", err)
						return nil
					}
					return err
				},
			},
			{
				Name:  "db",
				Usage: "create, migrate and seed the development database",
				Action: func(ctx *cli.Context) error {
					return runSteps(signalContext(), dbSteps(conf))
				},
			},
			{
				Name:  "node",
				Usage: "install the private Node runtime",
				Action: func(ctx *cli.Context) error {
					return installNode(signalContext(), conf.Node)
				},
			},
			{
				Name:    "list",
				Aliases: []string{"ls", "l"},
				Usage:   "list the supported package managers and their package lists",
				Action: func(ctx *cli.Context) error {
					in := ospkg.New()
					detected, ok := in.Detect()

					tbl := table.New("MANAGER", "HOST", "PACKAGES")
					for _, p := range ospkg.Profiles() {
						host := ""
						if ok && p.Command == detected.Command {
							host = "*"
						}
						tbl.AddRow(p.Command, host, strings.Join(p.Packages, " "))
					}
					tbl.Print()
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%s", err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns the status to exit with for err. A failed external
// command keeps its own exit status, anything else becomes 1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// signalContext returns a context canceled on SIGINT or SIGTERM, so external
// commands die with us.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		cancel()
	}()
	return ctx
}
