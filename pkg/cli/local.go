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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/netops-toolkit/portcsv/pkg/collector"
	"github.com/netops-toolkit/portcsv/pkg/config"
	"github.com/netops-toolkit/portcsv/pkg/console"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
	"github.com/netops-toolkit/portcsv/pkg/target"
)

func localCmd() *cli.Command {
	return &cli.Command{
		Name:                  "local",
		EnableShellCompletion: true,
		Usage:                 "Process local port detail captures to CSV",
		Description: `Parse every capture file in the input directory and write one CSV
file per capture, named after it, to the output directory.

  portcsv local --input Input --output Output`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Directory holding the captured command output",
				Value:   defaults.InputDir,
			},
			&cli.StringSliceFlag{
				Name:  "ext",
				Usage: "Capture file extensions (can be repeated)",
				Value: append([]string(nil), defaults.InputExtensions...),
			},
			outputFlag(),
			templateFlag(),
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of files processed in parallel",
				Value: defaults.Workers,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runLocal(ctx, cmd, cfg, newPrinter(cmd))
		},
	}
}

func runLocal(ctx context.Context, cmd *cli.Command, cfg *config.Config, p *console.Printer) error {
	targets, err := target.FromDirectory(cfg.Input.Dir, cfg.Input.Extensions)
	if err != nil {
		return err
	}
	p.Count("files in the directory", len(targets))
	if len(targets) == 0 {
		p.Notice(fmt.Sprintf("No capture files found in %q.", cfg.Input.Dir))
		return nil
	}

	r := newRunner(cmd, cfg, p)
	tpl, err := r.template()
	if err != nil {
		return err
	}

	src, err := collector.NewDefaultFactory().CreateSource(collector.ModeLocal)
	if err != nil {
		return err
	}

	_, err = r.collect(ctx, tpl, src, targets)
	return err
}
