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

package collector

import (
	"context"
	"fmt"

	"github.com/netops-toolkit/portcsv/pkg/target"
)

// Raw is the unparsed text fetched for a target.
type Raw struct {
	Text     string
	HostName string
}

// Source fetches raw text for a target.
type Source interface {
	Fetch(ctx context.Context, t target.Target) (*Raw, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, t target.Target) (*Raw, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, t target.Target) (*Raw, error) {
	return f(ctx, t)
}

// Mode selects where targets come from.
type Mode string

const (
	// ModeLocal reads captured logs from an input directory.
	ModeLocal Mode = "local"
	// ModeRemote collects from live devices over SSH.
	ModeRemote Mode = "remote"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLocal, ModeRemote:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}
