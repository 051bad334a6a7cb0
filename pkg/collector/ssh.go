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
	"log/slog"

	"github.com/netops-toolkit/portcsv/pkg/collector/ssh"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/target"
)

// SSHSource runs one command per device target.
type SSHSource struct {
	client *ssh.Client
}

// NewSSHSource wraps an ssh client.
func NewSSHSource(client *ssh.Client) *SSHSource {
	return &SSHSource{client: client}
}

// Fetch opens a session to t, captures the command output and closes it.
func (s *SSHSource) Fetch(ctx context.Context, t target.Target) (*Raw, error) {
	if t.Kind != target.KindDevice {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInternal, "ssh source cannot fetch target",
			map[string]any{"target": t.String()})
	}

	capture, err := s.client.Run(ctx, t.Address)
	if err != nil {
		return nil, err
	}
	slog.Debug("captured command output",
		"address", t.Address,
		"host", capture.HostName,
		"bytes", len(capture.Output))
	return &Raw{Text: capture.Output, HostName: capture.HostName}, nil
}
