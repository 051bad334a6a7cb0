/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/netops-toolkit/portcsv/pkg/logging"
)

const (
	name           = "portcsv"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with the process arguments and exits
// non-zero on failure. An interrupt is not a failure.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nProgram interrupted by user, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil && !interrupted(ctx, err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Nokia SROS port details to CSV",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Parse "show port detail" output from Nokia SROS routers into one CSV
file per capture or device.

local  - parses captured logs from an input directory.
remote - collects the command output from devices over SSH.
menu   - interactive menu, the default when run from a terminal.`,
		Flags:  globalFlags(),
		Before: initLogger,
		Commands: []*cli.Command{
			localCmd(),
			remoteCmd(),
			menuCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if isTerminal(cmd.Root().Reader) {
				return runMenu(ctx, cmd)
			}
			return cli.ShowAppHelp(cmd)
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Run configuration file (YAML or JSON)",
			Sources: cli.EnvVars("PORTCSV_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:  "report",
			Usage: "Write the run report to this file (- for stdout)",
		},
		&cli.StringFlag{
			Name:  "report-format",
			Usage: "Run report format (json, yaml, table)",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write run metrics in Prometheus text format to this file",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output (also honors NO_COLOR)",
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
	return ctx, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
