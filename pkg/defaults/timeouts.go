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

package defaults

import "time"

// SSH timeouts for live device sessions.
const (
	// SSHDialTimeout bounds TCP connect plus SSH handshake and authentication.
	SSHDialTimeout = 30 * time.Second

	// SSHPromptTimeout bounds waiting for the CLI prompt after login and
	// after the paging command.
	SSHPromptTimeout = 15 * time.Second

	// SSHReadTimeout bounds reading the output of the collected command.
	// Expiry is reported as an unreachable target.
	SSHReadTimeout = 90 * time.Second

	// SSHLogoutTimeout bounds the best-effort logout before the session is closed.
	SSHLogoutTimeout = 2 * time.Second
)

// SSHPort is the default SSH port.
const SSHPort = 22

// Collection defaults.
const (
	// Workers is the default width of the collection worker pool.
	Workers = 4

	// Command is the single command issued per device session.
	Command = "show port detail"

	// PagingCommand disables output paging on the SROS classic CLI.
	PagingCommand = "environment no more"

	// LogoutCommand ends the device session.
	LogoutCommand = "logout"

	// MaxInputSize caps the size of a local input file.
	MaxInputSize = 64 << 20
)

// Default locations, relative to the working directory.
const (
	InputDir     = "Input"
	OutputDir    = "Output"
	TemplateFile = "Lib/nokia_sros_show_port_detail.template"
	DeviceList   = "Lib/devices.txt"
)

// InputExtensions are the local file extensions collected by default.
var InputExtensions = []string{".log", ".txt"}

// OutputTimeFormat is the timestamp layout used in device output file names.
const OutputTimeFormat = "2006-01-02_15-04-05"
