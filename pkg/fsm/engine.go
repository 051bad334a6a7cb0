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

package fsm

import (
	"bufio"
	"io"
	"iter"
	"strings"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/record"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Parser applies a Template to raw text.
type Parser struct {
	tpl *Template
}

// NewParser returns a parser for the template.
func NewParser(t *Template) *Parser {
	return &Parser{tpl: t}
}

// Template returns the template the parser applies.
func (p *Parser) Template() *Template {
	return p.tpl
}

// ParseText parses text and collects every record.
// Input without any matching line yields an empty, non-nil slice.
func (p *Parser) ParseText(text string) ([]record.Record, error) {
	out := make([]record.Record, 0)
	for rec, err := range p.Records(strings.NewReader(text)) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Records parses r in a single forward pass and yields records as soon as
// they are complete. The sequence ends after the first error.
func (p *Parser) Records(r io.Reader) iter.Seq2[record.Record, error] {
	return func(yield func(record.Record, error) bool) {
		c := newCursor(p.tpl)

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		for sc.Scan() {
			lineNo++
			done, err := c.consume(strings.TrimRight(sc.Text(), "\r"), lineNo)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, rec := range c.drain(false) {
				if !yield(rec, nil) {
					return
				}
			}
			if done {
				break
			}
		}
		if err := sc.Err(); err != nil {
			yield(nil, apperrors.Wrap(apperrors.ErrCodeParse, "failed to read input", err))
			return
		}

		c.finish()
		for _, rec := range c.drain(true) {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// cursor is the per-parse state: active state, current values and the
// records completed but not yet handed to the caller.
type cursor struct {
	tpl   *Template
	state *State
	// terminal is the reserved state the parse stopped in, if any.
	terminal string

	scalars []string
	lists   [][]string

	// held keeps emitted records that a Fillup value may still modify.
	held  []record.Record
	ready []record.Record
}

func newCursor(t *Template) *cursor {
	return &cursor{
		tpl:     t,
		state:   t.states[StateStart],
		scalars: make([]string, len(t.values)),
		lists:   make([][]string, len(t.values)),
	}
}

// consume applies the first matching rule of the active state to line.
// It reports whether parsing reached End or EOF.
func (c *cursor) consume(line string, lineNo int) (bool, error) {
	rules := c.state.Rules
	for i := 0; i < len(rules); i++ {
		rule := rules[i]
		m := rule.re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}

		rescan := false
		next := ""
		for _, a := range rule.Actions {
			switch a.Kind {
			case ActionCapture:
				for _, cg := range rule.captures {
					start, end := m[2*cg.group], m[2*cg.group+1]
					if start < 0 {
						continue
					}
					c.assign(cg.value, line[start:end])
				}
			case ActionRecord:
				c.emit()
			case ActionClear:
				c.clear(false)
			case ActionClearAll:
				c.clear(true)
			case ActionContinue:
				rescan = true
			case ActionNextState:
				next = a.State
			case ActionError:
				msg := a.Message
				if msg == "" {
					msg = "rule raised an error"
				}
				return true, apperrors.NewWithContext(apperrors.ErrCodeParse, msg, map[string]any{
					"line":  lineNo,
					"state": c.state.Name,
					"input": line,
				})
			}
		}

		if rescan {
			continue
		}
		if next != "" {
			if next == StateEnd || next == StateEOF {
				c.terminal = next
				return true, nil
			}
			c.state = c.tpl.states[next]
		}
		return false, nil
	}
	return false, nil
}

func (c *cursor) assign(vi int, s string) {
	v := c.tpl.values[vi]
	if v.List {
		c.lists[vi] = append(c.lists[vi], s)
		return
	}
	c.scalars[vi] = s
	if v.Persistence == FillUp && s != "" {
		c.fillUp(vi, s)
	}
}

// fillUp copies s into earlier records lacking the column, stopping at the
// first record that already has a value.
func (c *cursor) fillUp(vi int, s string) {
	for i := len(c.held) - 1; i >= 0; i-- {
		if c.held[i][vi].Value != "" {
			break
		}
		c.held[i][vi].Value = s
	}
}

func (c *cursor) valueOf(vi int) string {
	if c.tpl.values[vi].List {
		return strings.Join(c.lists[vi], ListSeparator)
	}
	return c.scalars[vi]
}

// emit appends the current values as a record unless every value is empty
// or a required value is missing. A dropped record still clears the
// per-record values.
func (c *cursor) emit() {
	rec := make(record.Record, len(c.tpl.values))
	empty := true
	for i, v := range c.tpl.values {
		val := c.valueOf(i)
		if v.Required && val == "" {
			c.clear(false)
			return
		}
		if val != "" {
			empty = false
		}
		rec[i] = record.Field{Name: v.Name, Value: val}
	}
	if empty {
		return
	}

	if c.tpl.hasFillUp {
		c.held = append(c.held, rec)
	} else {
		c.ready = append(c.ready, rec)
	}
	c.clear(false)
}

// clear resets per-record values; all also resets carry-forward values.
func (c *cursor) clear(all bool) {
	for i, v := range c.tpl.values {
		if v.Persistence == CarryForward && !all {
			continue
		}
		c.scalars[i] = ""
		c.lists[i] = nil
	}
}

// pending reports whether a per-record value was captured and not emitted.
func (c *cursor) pending() bool {
	for i, v := range c.tpl.values {
		if v.Persistence == CarryForward {
			continue
		}
		if c.valueOf(i) != "" {
			return true
		}
	}
	return false
}

// finish applies end-of-input: unless parsing stopped in End or the
// template declares an EOF state, outstanding values form a last record.
func (c *cursor) finish() {
	if c.terminal == StateEnd {
		return
	}
	if _, declared := c.tpl.states[StateEOF]; declared {
		return
	}
	if c.pending() {
		c.emit()
	}
}

// drain returns records safe to hand out. Without Fillup values that is
// everything emitted so far; with them, only the prefix no later
// assignment can reach, unless all is set.
func (c *cursor) drain(all bool) []record.Record {
	if c.tpl.hasFillUp {
		n := len(c.held)
		if !all {
			n = c.frozen()
		}
		if n > 0 {
			c.ready = append(c.ready, c.held[:n]...)
			c.held = append([]record.Record(nil), c.held[n:]...)
		}
	}
	out := c.ready
	c.ready = nil
	return out
}

// frozen counts the held records that fillUp can no longer modify: those
// at or before the last record carrying every Fillup column.
func (c *cursor) frozen() int {
	n := len(c.held)
	for vi, v := range c.tpl.values {
		if v.Persistence != FillUp {
			continue
		}
		last := -1
		for i := len(c.held) - 1; i >= 0; i-- {
			if c.held[i][vi].Value != "" {
				last = i
				break
			}
		}
		if last+1 < n {
			n = last + 1
		}
	}
	return n
}
