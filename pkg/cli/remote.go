// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/netops-toolkit/portcsv/pkg/collector"
	"github.com/netops-toolkit/portcsv/pkg/config"
	"github.com/netops-toolkit/portcsv/pkg/console"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/target"
)

// Credential environment variables, also honored by the menu.
const (
	envUsername = "PORTCSV_USERNAME"
	envPassword = "PORTCSV_PASSWORD"
)

func remoteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "remote",
		EnableShellCompletion: true,
		Usage:                 "Collect port details from devices over SSH to CSV",
		Description: `Run "show port detail" on every device in the device list and write
one CSV file per device to the output directory, named
{hostname}_{address}_{timestamp}.csv.

Missing credentials are prompted for; the password is read without echo.

  portcsv remote --devices Lib/devices.txt --username admin`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "devices",
				Aliases: []string{"d"},
				Usage:   "File listing one device address per line",
				Value:   defaults.DeviceList,
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "SSH username",
				Sources: cli.EnvVars(envUsername),
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "SSH password",
				Sources: cli.EnvVars(envPassword),
			},
			&cli.StringFlag{
				Name:  "command",
				Usage: "Command whose output is parsed",
				Value: defaults.Command,
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "SSH port used when an address has none",
				Value: defaults.SSHPort,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of devices processed in parallel",
				Value: defaults.Workers,
			},
			&cli.DurationFlag{
				Name:  "dial-timeout",
				Usage: "Timeout for connecting and logging in",
				Value: defaults.SSHDialTimeout,
			},
			&cli.DurationFlag{
				Name:  "read-timeout",
				Usage: "Timeout for reading the command output",
				Value: defaults.SSHReadTimeout,
			},
			&cli.FloatFlag{
				Name:  "dial-rate",
				Usage: "Maximum new sessions per second (0 for no limit)",
			},
			&cli.StringFlag{
				Name:  "known-hosts",
				Usage: "known_hosts file used to verify device host keys",
			},
			outputFlag(),
			templateFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := newPrinter(cmd)
			return runRemote(ctx, cmd, cfg, p, newPrompter(cmd, p))
		},
	}
}

func runRemote(ctx context.Context, cmd *cli.Command, cfg *config.Config, p *console.Printer, pr *prompter) error {
	targets, err := target.FromDeviceList(cfg.Devices)
	if err != nil {
		return err
	}
	p.Count("devices", len(targets))

	r := newRunner(cmd, cfg, p)
	tpl, err := r.template()
	if err != nil {
		return err
	}

	username := cfg.SSH.Username
	if username == "" {
		username = os.Getenv(envUsername)
	}
	if username == "" {
		if username, err = pr.line(ctx, "Enter username: "); err != nil {
			if interrupted(ctx, err) {
				return nil
			}
			return apperrors.Wrap(apperrors.ErrCodeConfig, "failed to read username", err)
		}
	}
	if username == "" {
		return apperrors.New(apperrors.ErrCodeConfig, "username is required")
	}

	password := cmd.String("password")
	if password == "" {
		password = os.Getenv(envPassword)
	}
	if password == "" {
		if password, err = pr.password(ctx, "Enter password: "); err != nil {
			if interrupted(ctx, err) {
				return nil
			}
			return apperrors.Wrap(apperrors.ErrCodeConfig, "failed to read password", err)
		}
	}

	factory := collector.NewDefaultFactory(
		collector.WithSSHConfig(cfg.SessionConfig(username, password)),
		collector.WithDialRate(cfg.SSH.DialRate),
	)
	src, err := factory.CreateSource(collector.ModeRemote)
	if err != nil {
		return err
	}

	_, err = r.collect(ctx, tpl, src, targets)
	return err
}
