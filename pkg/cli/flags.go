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
	"github.com/urfave/cli/v3"

	"github.com/netops-toolkit/portcsv/pkg/config"
	"github.com/netops-toolkit/portcsv/pkg/console"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
)

// Flags are built per command; urfave flags keep parse state and must not
// be shared between commands.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Directory CSV files are written to",
		Value:   defaults.OutputDir,
	}
}

func templateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "template",
		Aliases: []string{"t"},
		Usage:   "Rule set used to parse the command output",
		Value:   defaults.TemplateFile,
	}
}

// loadConfig resolves the run configuration: defaults, then the config
// file, then explicitly set flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	set := func(name string, apply func()) {
		if cmd.IsSet(name) {
			apply()
		}
	}

	set("input", func() { cfg.Input.Dir = cmd.String("input") })
	set("ext", func() { cfg.Input.Extensions = cmd.StringSlice("ext") })
	set("output", func() { cfg.Output.Dir = cmd.String("output") })
	set("template", func() { cfg.Template = cmd.String("template") })
	set("devices", func() { cfg.Devices = cmd.String("devices") })
	set("workers", func() { cfg.Workers = cmd.Int("workers") })
	set("report", func() { cfg.Report.Path = cmd.String("report") })
	set("report-format", func() { cfg.Report.Format = cmd.String("report-format") })
	set("metrics-file", func() { cfg.MetricsFile = cmd.String("metrics-file") })
	set("username", func() { cfg.SSH.Username = cmd.String("username") })
	set("port", func() { cfg.SSH.Port = cmd.Int("port") })
	set("command", func() { cfg.SSH.Command = cmd.String("command") })
	set("read-timeout", func() { cfg.SSH.ReadTimeout = cmd.Duration("read-timeout") })
	set("dial-timeout", func() { cfg.SSH.DialTimeout = cmd.Duration("dial-timeout") })
	set("dial-rate", func() { cfg.SSH.DialRate = cmd.Float("dial-rate") })
	set("known-hosts", func() { cfg.SSH.KnownHostsFile = cmd.String("known-hosts") })
}

func newPrinter(cmd *cli.Command) *console.Printer {
	return console.New(cmd.Root().Writer, console.WithNoColor(cmd.Bool("no-color")))
}
