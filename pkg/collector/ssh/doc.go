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

// Package ssh runs a single CLI command on a network device over an
// interactive SSH shell and returns its output.
//
// A session logs in with the password (also answering keyboard-interactive
// challenges), requests a PTY and shell, waits for the CLI prompt, disables
// paging, sends the command, reads until the prompt returns and logs out.
// The session is closed on every path.
//
//	c := ssh.New(ssh.Config{Username: "admin", Password: pw, Command: "show port detail"})
//	capture, err := c.Run(ctx, "10.0.0.1")
//	if err != nil {
//	    // errors.CodeOf(err) is UNREACHABLE, UNAUTHORIZED or TRANSPORT
//	}
//	fmt.Println(capture.HostName, len(capture.Output))
//
// The host name comes from the prompt: "A:PE-1#" yields "PE-1". Prompts
// without a ':' fall back to the address.
package ssh
