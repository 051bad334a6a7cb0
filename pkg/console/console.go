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

// Package console prints run progress and summaries for interactive use.
//
// Output is styled with lipgloss. Color is dropped when the writer is not
// a terminal, when NO_COLOR is set, or when WithNoColor is used.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/netops-toolkit/portcsv/pkg/orchestrator"
)

const ruleWidth = 60

// Title is shown at the top of the interactive menu.
const Title = "Nokia SROS Port Details Processor: Local & Remote to CSV"

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithNoColor disables styling.
func WithNoColor(noColor bool) Option {
	return func(p *Printer) {
		p.noColor = noColor
	}
}

// Printer writes styled lines. It is safe for concurrent use.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool

	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	prompt  lipgloss.Style
	muted   lipgloss.Style
	plain   lipgloss.Style
}

// New returns a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w}
	for _, opt := range opts {
		opt(p)
	}

	r := lipgloss.NewRenderer(w)
	if p.noColor || os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}

	p.title = r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	p.success = r.NewStyle().Foreground(lipgloss.Color("2"))
	p.failure = r.NewStyle().Foreground(lipgloss.Color("1"))
	p.notice = r.NewStyle().Foreground(lipgloss.Color("11"))
	p.prompt = r.NewStyle().Foreground(lipgloss.Color("5"))
	p.muted = r.NewStyle().Faint(true)
	p.plain = r.NewStyle()

	return p
}

func (p *Printer) println(style lipgloss.Style, s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, style.Render(s))
}

// Menu prints the interactive menu.
func (p *Printer) Menu() {
	p.println(p.muted, strings.Repeat("=", ruleWidth))
	p.println(p.title, Title)
	p.println(p.muted, strings.Repeat("=", ruleWidth))
	p.println(p.plain, "1. Process Local Port Details to CSV")
	p.println(p.plain, "2. Process Remote Port Details to CSV")
	p.println(p.plain, "3. Exit")
	p.println(p.muted, strings.Repeat("-", ruleWidth))
}

// Prompt writes s without a trailing newline.
func (p *Printer) Prompt(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, p.prompt.Render(s))
}

// Info prints a highlighted status line.
func (p *Printer) Info(s string) {
	p.println(p.title, s)
}

// Notice prints a warning-level line.
func (p *Printer) Notice(s string) {
	p.println(p.notice, s)
}

// Error prints an error line.
func (p *Printer) Error(s string) {
	p.println(p.failure, "[ERROR] "+s)
}

// Count prints the number of targets about to be processed.
func (p *Printer) Count(label string, n int) {
	p.println(p.notice, fmt.Sprintf("Number of %s : %d", label, n))
}

// Outcome prints one line for a completed target.
func (p *Printer) Outcome(o orchestrator.Outcome) {
	if o.Succeeded() {
		p.println(p.success, FormatOutcome(o))
		return
	}
	p.println(p.failure, FormatOutcome(o))
}

// Summary prints the totals of a run.
func (p *Printer) Summary(r *orchestrator.Report) {
	s := r.Summary
	line := fmt.Sprintf("Processed %d targets: %d succeeded, %d failed, %d records",
		s.Targets, s.Succeeded, s.Failed, s.Records)
	if s.Failed > 0 {
		p.println(p.notice, line)
		return
	}
	p.println(p.success, line)
}

// FormatOutcome renders an outcome as an unstyled line.
func FormatOutcome(o orchestrator.Outcome) string {
	if o.Succeeded() {
		return fmt.Sprintf("[SUCCESS] Processed %s to CSV (%d records). Saved as '%s'.",
			o.Target.Name, o.Records, o.Path)
	}
	return fmt.Sprintf("[ERROR] %s: %s (%s)", o.Target.Name, o.Message, o.Code)
}
