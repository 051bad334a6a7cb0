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

// Package defaults provides centralized configuration constants for portcsv.
//
// This package defines timeout values, worker pool sizing, default paths and
// the device command used across the codebase. Centralizing these values
// ensures the CLI, the configuration file and the library entry points agree.
//
// # Categories
//
//   - SSH timeouts: dial, prompt wait and command read timeouts
//   - Collection: worker pool width and the device command
//   - Paths: default input, output, template and device list locations
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SSHReadTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Dial: 30s, long enough for slow management networks
//   - Read: 90s, "show port detail" on a fully populated chassis is long
//   - Prompt: 15s for the login banner and the paging command
package defaults
