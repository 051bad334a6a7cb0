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

package ssh

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"
)

var errReadTimeout = errors.New("timed out waiting for device output")

// anyPrompt matches a CLI prompt at the very end of the output.
var anyPrompt = regexp.MustCompile(`[^\r\n]*[#>$]\s?$`)

// matcher returns the end offset of the first match in s, or -1.
type matcher func(s string) int

func matchAnyPrompt(s string) int {
	if loc := anyPrompt.FindStringIndex(s); loc != nil {
		return loc[1]
	}
	return -1
}

// matchPrompt matches a line that is exactly prompt, followed by nothing
// but optional spaces at the end of the output.
func matchPrompt(prompt string) matcher {
	return func(s string) int {
		trimmed := strings.TrimRight(s, " ")
		if !strings.HasSuffix(trimmed, prompt) {
			return -1
		}
		head := trimmed[:len(trimmed)-len(prompt)]
		if head != "" && !strings.HasSuffix(head, "\n") && !strings.HasSuffix(head, "\r") {
			return -1
		}
		return len(s)
	}
}

// expecter accumulates a stream and lets the caller wait for a pattern in
// the data not yet consumed.
type expecter struct {
	mu     sync.Mutex
	buf    strings.Builder
	offset int
	err    error

	notify chan struct{}
}

func newExpecter(r io.Reader) *expecter {
	e := &expecter{notify: make(chan struct{}, 1)}
	go e.pump(r)
	return e
}

func (e *expecter) pump(r io.Reader) {
	chunk := make([]byte, 32*1024)
	for {
		n, err := r.Read(chunk)
		e.mu.Lock()
		if n > 0 {
			e.buf.Write(chunk[:n])
		}
		if err != nil {
			e.err = err
		}
		e.mu.Unlock()

		select {
		case e.notify <- struct{}{}:
		default:
		}
		if err != nil {
			return
		}
	}
}

// waitFor blocks until m matches the unconsumed output and returns the
// output up to the end of the match, consuming it.
func (e *expecter) waitFor(ctx context.Context, m matcher, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		e.mu.Lock()
		pending := e.buf.String()[e.offset:]
		readErr := e.err
		if end := m(pending); end >= 0 {
			e.offset += end
			e.mu.Unlock()
			return pending[:end], nil
		}
		e.mu.Unlock()

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return "", errors.New("session closed by device")
			}
			return "", readErr
		}

		select {
		case <-e.notify:
		case <-timer.C:
			return "", errReadTimeout
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func lastLine(s string) string {
	s = strings.TrimRight(s, " \r\n")
	if i := strings.LastIndexAny(s, "\r\n"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// commandOutput strips the echoed command line and the trailing prompt
// from raw and normalises line endings.
func commandOutput(raw, command, prompt string) string {
	out := strings.ReplaceAll(raw, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "")

	out = strings.TrimRight(out, " ")
	out = strings.TrimSuffix(out, prompt)

	if first, rest, ok := strings.Cut(out, "\n"); ok && strings.Contains(first, command) {
		out = rest
	}
	return out
}
