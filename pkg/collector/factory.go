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
	"fmt"

	"golang.org/x/time/rate"

	"github.com/netops-toolkit/portcsv/pkg/collector/ssh"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
)

// Factory creates sources.
type Factory interface {
	CreateFileSource() Source
	CreateSSHSource() Source
	CreateSource(mode Mode) (Source, error)
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithSSHConfig sets the session configuration for device targets.
func WithSSHConfig(cfg ssh.Config) Option {
	return func(f *DefaultFactory) {
		f.SSH = cfg
	}
}

// WithMaxInputSize caps the size of local input files.
func WithMaxInputSize(n int64) Option {
	return func(f *DefaultFactory) {
		f.MaxInputSize = n
	}
}

// WithDialRate limits new SSH sessions to perSecond across the run.
// Zero or less disables the limit.
func WithDialRate(perSecond float64) Option {
	return func(f *DefaultFactory) {
		f.DialRate = perSecond
	}
}

// DefaultFactory creates sources with production dependencies.
type DefaultFactory struct {
	SSH          ssh.Config
	MaxInputSize int64
	DialRate     float64
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		MaxInputSize: defaults.MaxInputSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateFileSource creates a local file source.
func (f *DefaultFactory) CreateFileSource() Source {
	return NewFileSource(f.MaxInputSize)
}

// CreateSSHSource creates a device source.
func (f *DefaultFactory) CreateSSHSource() Source {
	var opts []ssh.Option
	if f.DialRate > 0 {
		opts = append(opts, ssh.WithLimiter(rate.NewLimiter(rate.Limit(f.DialRate), 1)))
	}
	return NewSSHSource(ssh.New(f.SSH, opts...))
}

// CreateSource creates the source for mode.
func (f *DefaultFactory) CreateSource(mode Mode) (Source, error) {
	switch mode {
	case ModeLocal:
		return f.CreateFileSource(), nil
	case ModeRemote:
		return f.CreateSSHSource(), nil
	default:
		return nil, fmt.Errorf("unsupported mode %q", mode)
	}
}
