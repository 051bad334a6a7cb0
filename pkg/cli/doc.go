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

// Package cli implements the portcsv command line.
//
// # Commands
//
// local - Process captured logs:
//
//	portcsv local [--input Input] [--output Output] [--template FILE] [--ext .log --ext .txt]
//
// Parses every capture file in the input directory and writes one CSV per
// capture, named after it.
//
// remote - Collect from devices over SSH:
//
//	portcsv remote [--devices Lib/devices.txt] [--username U] [--workers 4]
//
// Runs "show port detail" on each listed device, at most --workers at a
// time, and writes {hostname}_{address}_{timestamp}.csv per device. A
// missing username or password is prompted for.
//
// menu - Interactive menu:
//
//	portcsv menu
//
// The default when portcsv is started from a terminal without a command.
//
// # Global Flags
//
//	--config, -c      Run configuration file (YAML or JSON)
//	--log-level       Log level: debug, info, warn, error (default: info)
//	--report          Write the run report to a file, - for stdout
//	--report-format   Report format: yaml, json, table (default: yaml)
//	--metrics-file    Write run metrics in Prometheus text format
//	--no-color        Disable colored output
//
// Flags override the configuration file, which overrides built-in defaults.
//
// # Environment Variables
//
//	PORTCSV_CONFIG    Run configuration file
//	PORTCSV_USERNAME  SSH username
//	PORTCSV_PASSWORD  SSH password
//	LOG_LEVEL         Logging verbosity
//	NO_COLOR          Disable colored output
//
// # Exit Codes
//
//	0  Run completed, including runs with failed targets or an interrupt
//	1  Invalid configuration or unexpected error
package cli
