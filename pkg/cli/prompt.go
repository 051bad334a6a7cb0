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

package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/netops-toolkit/portcsv/pkg/console"
)

// prompter reads answers from the command's input. Passwords are read
// without echo when the input is a terminal. Reads stop waiting when the
// context is cancelled; an abandoned read is picked up by the next prompt.
type prompter struct {
	in       *bufio.Reader
	fd       int
	terminal bool
	printer  *console.Printer
	pending  chan readResult
}

type readResult struct {
	s   string
	err error
}

func newPrompter(cmd *cli.Command, p *console.Printer) *prompter {
	var r io.Reader = os.Stdin
	if root := cmd.Root(); root.Reader != nil {
		r = root.Reader
	}

	pr := &prompter{in: bufio.NewReader(r), printer: p}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pr.fd = int(f.Fd())
		pr.terminal = true
	}
	return pr
}

// line prompts and returns the trimmed answer. io.EOF is returned only
// when the input ended before any answer, ctx.Err() when ctx is done first.
func (p *prompter) line(ctx context.Context, prompt string) (string, error) {
	p.printer.Prompt(prompt)
	r, err := p.await(ctx, func() (string, error) {
		return p.in.ReadString('\n')
	})
	if err != nil {
		return "", err
	}
	if r.err != nil && !(errors.Is(r.err, io.EOF) && r.s != "") {
		return "", r.err
	}
	return strings.TrimSpace(r.s), nil
}

func (p *prompter) password(ctx context.Context, prompt string) (string, error) {
	if !p.terminal {
		return p.line(ctx, prompt)
	}

	state, err := term.GetState(p.fd)
	if err != nil {
		return "", err
	}

	p.printer.Prompt(prompt)
	r, err := p.await(ctx, func() (string, error) {
		b, err := term.ReadPassword(p.fd)
		return string(b), err
	})
	if err != nil {
		// echo stays off while ReadPassword is blocked
		_ = term.Restore(p.fd, state)
		p.printer.Prompt("\n")
		return "", err
	}
	p.printer.Prompt("\n")
	if r.err != nil {
		return "", r.err
	}
	return r.s, nil
}

// await runs read in the background unless a read is already pending and
// waits for its result or for ctx.
func (p *prompter) await(ctx context.Context, read func() (string, error)) (readResult, error) {
	if p.pending == nil {
		ch := make(chan readResult, 1)
		p.pending = ch
		go func() {
			s, err := read()
			ch <- readResult{s: s, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return readResult{}, ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		return r, nil
	}
}

// interrupted reports whether err is the result of ctx being cancelled.
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}
