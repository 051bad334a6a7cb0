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

package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netops-toolkit/portcsv/pkg/collector"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/fsm"
	"github.com/netops-toolkit/portcsv/pkg/record"
	"github.com/netops-toolkit/portcsv/pkg/serializer"
	"github.com/netops-toolkit/portcsv/pkg/target"
	"github.com/netops-toolkit/portcsv/pkg/transform"
)

// SinkFactory returns the serializer that writes the rows of one target to path.
type SinkFactory func(path string) serializer.Serializer

// Option is a functional option for configuring Orchestrator instances.
type Option func(*Orchestrator)

// WithWorkers sets the maximum number of targets processed at once.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSource sets where raw text comes from.
func WithSource(src collector.Source) Option {
	return func(o *Orchestrator) {
		o.source = src
	}
}

// WithTemplate sets the rule set applied to every target.
func WithTemplate(t *fsm.Template) Option {
	return func(o *Orchestrator) {
		o.template = t
	}
}

// WithOutputDir sets the directory CSV files are written to.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) {
		o.outputDir = dir
	}
}

// WithClock sets the time source used for device output names.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOnOutcome registers a callback invoked as each target completes.
// Calls are serialized.
func WithOnOutcome(fn func(Outcome)) Option {
	return func(o *Orchestrator) {
		o.onOutcome = fn
	}
}

// WithSink replaces the CSV file sink.
func WithSink(fn SinkFactory) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.sink = fn
		}
	}
}

// Orchestrator runs fetch, parse, transform and write for a set of targets.
type Orchestrator struct {
	workers   int
	source    collector.Source
	template  *fsm.Template
	outputDir string
	now       func() time.Time
	onOutcome func(Outcome)
	sink      SinkFactory
}

// New creates an Orchestrator. A template and a source are required.
func New(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		workers:   defaults.Workers,
		outputDir: defaults.OutputDir,
		now:       time.Now,
		sink: func(path string) serializer.Serializer {
			return serializer.NewCSVFileWriter(path)
		},
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.template == nil {
		return nil, apperrors.New(apperrors.ErrCodeConfig, "rule set is required")
	}
	if o.source == nil {
		return nil, apperrors.New(apperrors.ErrCodeConfig, "target source is required")
	}

	return o, nil
}

// Workers returns the parallelism bound.
func (o *Orchestrator) Workers() int {
	return o.workers
}

// Collect processes every target and returns one Outcome per target in
// completion order. A failing target never affects the others. Targets not
// yet started when ctx is cancelled fail with a "cancelled" outcome.
func (o *Orchestrator) Collect(ctx context.Context, targets []target.Target) []Outcome {
	start := time.Now()
	defer func() {
		collectionDuration.Observe(time.Since(start).Seconds())
	}()
	collectionTargets.Set(float64(len(targets)))

	slog.Debug("starting collection",
		slog.Int("targets", len(targets)),
		slog.Int("workers", o.workers))

	var mu sync.Mutex
	outcomes := make([]Outcome, 0, len(targets))
	claims := newPathClaims(len(targets))

	// Tasks never return errors, so the group is only used for its limit.
	g := new(errgroup.Group)
	g.SetLimit(o.workers)

	for _, t := range targets {
		g.Go(func() error {
			out := o.process(ctx, t, claims)

			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, out)
			if o.onOutcome != nil {
				o.onOutcome(out)
			}
			return nil
		})
	}

	_ = g.Wait()

	slog.Debug("collection completed",
		slog.Int("targets", len(targets)),
		slog.Duration("duration", time.Since(start)))

	return outcomes
}

// process runs the pipeline for one target. It never panics.
func (o *Orchestrator) process(ctx context.Context, t target.Target, claims *pathClaims) (out Outcome) {
	start := time.Now()
	out = Outcome{Target: t}

	defer func() {
		if r := recover(); r != nil {
			out = failed(t, out.HostName, apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("panic: %v", r)))
		}
		out.Duration = time.Since(start)
		observeOutcome(out)
		logOutcome(out)
	}()

	if err := ctx.Err(); err != nil {
		return failed(t, "", apperrors.Wrap(apperrors.ErrCodeInternal, "cancelled", err))
	}

	raw, err := o.source.Fetch(ctx, t)
	if err != nil {
		return failed(t, "", classify(err, apperrors.ErrCodeFetch, "fetch failed"))
	}
	if raw == nil {
		return failed(t, "", apperrors.New(apperrors.ErrCodeInternal, "source returned no text"))
	}
	out.HostName = raw.HostName

	rows, err := o.rows(raw.Text)
	if err != nil {
		return failed(t, raw.HostName, err)
	}

	path := filepath.Join(o.outputDir, t.OutputName(raw.HostName, o.now()))
	if err := claims.claim(path, t); err != nil {
		return failed(t, raw.HostName, err)
	}
	if err := o.sink(path).Serialize(ctx, rows); err != nil {
		return failed(t, raw.HostName, classify(err, apperrors.ErrCodeWrite, "write failed"))
	}

	return Outcome{
		Target:   t,
		Status:   StatusSuccess,
		Path:     path,
		Records:  len(rows),
		HostName: raw.HostName,
	}
}

// rows parses text and applies the record transformation.
func (o *Orchestrator) rows(text string) ([]record.Record, error) {
	recs, err := fsm.NewParser(o.template).ParseText(text)
	if err != nil {
		return nil, classify(err, apperrors.ErrCodeParse, "parse failed")
	}
	if len(recs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeParse, "no records parsed")
	}
	return transform.Rows(recs), nil
}

// pathClaims records which target owns each output path within one run, so
// a file written for one target is never overwritten for another.
type pathClaims struct {
	mu     sync.Mutex
	owners map[string]target.Target
}

func newPathClaims(n int) *pathClaims {
	return &pathClaims{owners: make(map[string]target.Target, n)}
}

func (c *pathClaims) claim(path string, t target.Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if owner, ok := c.owners[path]; ok {
		return apperrors.NewWithContext(apperrors.ErrCodeWrite,
			fmt.Sprintf("output %s already written for %s", filepath.Base(path), owner.Name),
			map[string]any{"path": path, "owner": owner.String()})
	}
	c.owners[path] = t
	return nil
}

// classify keeps the code of a structured error and assigns code otherwise.
func classify(err error, code apperrors.ErrorCode, msg string) error {
	var se *apperrors.StructuredError
	if stderrors.As(err, &se) {
		return err
	}
	return apperrors.Wrap(code, msg, err)
}

func failed(t target.Target, host string, err error) Outcome {
	return Outcome{
		Target:   t,
		Status:   StatusFailed,
		HostName: host,
		Code:     apperrors.CodeOf(err),
		Message:  apperrors.MessageOf(err),
		Err:      err,
	}
}

func logOutcome(o Outcome) {
	if o.Succeeded() {
		slog.Info("target collected",
			slog.String("target", o.Target.String()),
			slog.String("path", o.Path),
			slog.Int("records", o.Records),
			slog.Duration("duration", o.Duration))
		return
	}
	slog.Warn("target failed",
		slog.String("target", o.Target.String()),
		slog.String("code", string(o.Code)),
		slog.String("error", o.Message),
		slog.Duration("duration", o.Duration))
}
