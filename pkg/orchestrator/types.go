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
	"time"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/target"
)

// Status is the result of one target.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Outcome is the result of collecting one target.
type Outcome struct {
	Target target.Target `json:"target" yaml:"target"`
	Status Status        `json:"status" yaml:"status"`

	// Path is the written CSV file, set on success.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Records is the number of rows written.
	Records  int    `json:"records" yaml:"records"`
	HostName string `json:"hostName,omitempty" yaml:"hostName,omitempty"`

	// Code and Message describe a failure.
	Code    apperrors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
	Message string              `json:"message,omitempty" yaml:"message,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`

	// Err is the underlying error of a failure.
	Err error `json:"-" yaml:"-"`
}

// Succeeded reports whether the target produced a CSV file.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}
