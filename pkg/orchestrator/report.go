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
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/netops-toolkit/portcsv/pkg/header"
)

// ReportAPIVersion is the schema version of collection reports.
const ReportAPIVersion = "portcsv.netops-toolkit.io/v1alpha1"

// Summary holds the totals of a run.
type Summary struct {
	Targets   int `json:"targets" yaml:"targets"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	Records   int `json:"records" yaml:"records"`

	// Failures counts failed targets per error code.
	Failures map[string]int `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Report is the per-run document written with --report.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Summary  Summary   `json:"summary" yaml:"summary"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// NewReport summarizes outcomes. Outcomes are sorted by target so that
// reports of the same run compare equal regardless of completion order.
func NewReport(outcomes []Outcome, version string) *Report {
	r := &Report{
		Outcomes: make([]Outcome, len(outcomes)),
	}
	r.Init(header.KindCollectionReport, ReportAPIVersion, version)
	r.Metadata["run-id"] = uuid.NewString()

	copy(r.Outcomes, outcomes)
	sort.SliceStable(r.Outcomes, func(i, j int) bool {
		return r.Outcomes[i].Target.String() < r.Outcomes[j].Target.String()
	})

	r.Summary.Targets = len(outcomes)
	var total time.Duration
	for _, o := range outcomes {
		total += o.Duration
		if o.Succeeded() {
			r.Summary.Succeeded++
			r.Summary.Records += o.Records
			continue
		}
		r.Summary.Failed++
		if r.Summary.Failures == nil {
			r.Summary.Failures = make(map[string]int)
		}
		r.Summary.Failures[string(o.Code)]++
	}
	r.Metadata["target-time"] = total.String()

	return r
}

// Failed returns the failed outcomes in report order.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			out = append(out, o)
		}
	}
	return out
}
