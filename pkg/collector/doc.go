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

// Package collector acquires the raw CLI text for a target.
//
// # Core Interface
//
// A Source fetches the text for one target:
//
//	type Source interface {
//	    Fetch(ctx context.Context, t target.Target) (*Raw, error)
//	}
//
// Raw carries the text and the host name used to name the output file.
// Errors carry a fetch code from pkg/errors: FETCH for local files,
// UNREACHABLE, UNAUTHORIZED or TRANSPORT for devices.
//
// # Sources
//
// FileSource reads captured logs through the file package: size limited,
// BOM aware, UTF-8 validated. The host name is the file name.
//
// SSHSource runs the configured command through the ssh package. The host
// name comes from the device prompt.
//
// # Factory Pattern
//
// The Factory interface abstracts source creation so the orchestrator can
// be driven by fakes in tests:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithSSHConfig(ssh.Config{Username: u, Password: p}),
//	    collector.WithDialRate(5),
//	)
//	src, err := factory.CreateSource(collector.ModeRemote)
//
// # Thread Safety
//
// Sources hold no per-call state and are safe for concurrent use by the
// orchestrator's workers.
package collector
