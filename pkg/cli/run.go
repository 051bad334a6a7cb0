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
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/netops-toolkit/portcsv/pkg/collector"
	"github.com/netops-toolkit/portcsv/pkg/config"
	"github.com/netops-toolkit/portcsv/pkg/console"
	"github.com/netops-toolkit/portcsv/pkg/fsm"
	"github.com/netops-toolkit/portcsv/pkg/orchestrator"
	"github.com/netops-toolkit/portcsv/pkg/serializer"
	"github.com/netops-toolkit/portcsv/pkg/target"
)

// runner carries one collection run from template loading to the report.
type runner struct {
	cfg     *config.Config
	printer *console.Printer
	out     io.Writer
}

func newRunner(cmd *cli.Command, cfg *config.Config, p *console.Printer) *runner {
	return &runner{
		cfg:     cfg,
		printer: p,
		out:     cmd.Root().Writer,
	}
}

func (r *runner) template() (*fsm.Template, error) {
	return fsm.Load(r.cfg.Template)
}

func (r *runner) collect(ctx context.Context, tpl *fsm.Template, src collector.Source, targets []target.Target) (*orchestrator.Report, error) {
	o, err := orchestrator.New(
		orchestrator.WithTemplate(tpl),
		orchestrator.WithSource(src),
		orchestrator.WithOutputDir(r.cfg.Output.Dir),
		orchestrator.WithWorkers(r.cfg.Workers),
		orchestrator.WithOnOutcome(r.printer.Outcome),
	)
	if err != nil {
		return nil, err
	}

	report := orchestrator.NewReport(o.Collect(ctx, targets), version)
	r.printer.Summary(report)
	if ctx.Err() != nil {
		r.printer.Notice("Program interrupted by user, remaining targets were cancelled.")
	}

	// the report and metrics describe the interrupted run too
	ctx = context.WithoutCancel(ctx)

	if err := r.writeReport(ctx, report); err != nil {
		return report, err
	}

	if path := r.cfg.MetricsFile; path != "" {
		if err := orchestrator.WriteMetrics(path); err != nil {
			return report, err
		}
		slog.Debug("metrics written", "path", path)
	}

	return report, nil
}

func (r *runner) writeReport(ctx context.Context, report *orchestrator.Report) error {
	path := r.cfg.Report.Path
	if path == "" {
		return nil
	}

	format, err := serializer.ParseFormat(r.cfg.Report.Format)
	if err != nil {
		return err
	}

	var w *serializer.Writer
	if path == "-" {
		w = serializer.NewWriter(format, r.out)
	} else {
		w = serializer.NewFileWriterOrStdout(format, path)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close report writer", "error", err)
		}
	}()

	return w.Serialize(ctx, report)
}
