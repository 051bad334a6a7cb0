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

// Package orchestrator runs the per-target pipeline over many targets with
// bounded parallelism.
//
// Each target goes through fetch, parse, transform and write, strictly in
// that order, inside one worker. Whatever goes wrong for a target, including
// a panic, becomes a failed Outcome carrying an error code; it never stops
// other targets and Collect itself never fails. Configuration problems are
// reported by New, before any target is attempted.
//
// Usage:
//
//	o, err := orchestrator.New(
//	    orchestrator.WithTemplate(tpl),
//	    orchestrator.WithSource(src),
//	    orchestrator.WithOutputDir("Output"),
//	    orchestrator.WithWorkers(4),
//	)
//	if err != nil {
//	    return err
//	}
//	outcomes := o.Collect(ctx, targets)
//	report := orchestrator.NewReport(outcomes, version)
//
// Outcomes arrive in completion order. WithOnOutcome streams them as they
// complete; callbacks are serialized.
//
// # Observability
//
// Per-target durations and results are recorded as Prometheus metrics
// (portcsv_* series) and can be written in text format with WriteMetrics.
package orchestrator
