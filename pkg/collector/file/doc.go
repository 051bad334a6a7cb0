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

// Package file reads local text files: captured CLI logs and line lists.
//
// Files are size-checked before reading and decoded to UTF-8. A UTF-8 byte
// order mark is dropped; a UTF-16 file (as written by some Windows terminal
// loggers) must start with a byte order mark and is transcoded. Anything
// else must already be valid UTF-8.
//
// # Usage
//
// Read a whole capture:
//
//	p := file.NewParser(file.WithMaxSize(64 << 20))
//	text, err := p.ReadText("Input/pe1.log")
//
// Read a line list, skipping blanks and # comments:
//
//	lines, err := file.NewParser().GetLines("Lib/devices.txt")
//
// # Thread Safety
//
// A Parser is immutable after construction and can be shared.
package file
