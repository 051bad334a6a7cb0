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
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

var (
	valueLineRe = regexp.MustCompile(`^Value\s+(?:(\S+)\s+)?(\w+)\s+(\(.*\))\s*$`)
	stateNameRe = regexp.MustCompile(`^\w+$`)
	ruleLineRe  = regexp.MustCompile(`^(?:\s+|\t)\^`)
	// The greedy prefix makes the last " -> " delimit the actions, so rule
	// regexes may themselves contain "->".
	ruleActionRe = regexp.MustCompile(`^(.*\S)\s+->\s*(.*)$`)
)

var (
	lineOps = map[string]ActionKind{
		"Next":     -1,
		"Continue": ActionContinue,
		"Error":    ActionError,
	}
	recordOps = map[string]ActionKind{
		"NoRecord": -1,
		"Record":   ActionRecord,
		"Clear":    ActionClear,
		"Clearall": ActionClearAll,
	}
)

// Load reads and validates a template file.
func Load(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfig, "failed to open template", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfig, "invalid template", err,
			map[string]any{"path": path})
	}
	return t, nil
}

// ParseTemplate parses a template held in memory.
func ParseTemplate(text string) (*Template, error) {
	return Parse(strings.NewReader(text))
}

// Parse reads a template and validates every state reference up front, so a
// template that loads successfully can never fail on configuration during
// a parse.
func Parse(r io.Reader) (*Template, error) {
	p := &templateParser{
		t: &Template{
			index:  make(map[string]int),
			states: make(map[string]*State),
		},
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.line++
		if err := p.feed(strings.TrimRight(sc.Text(), "\r")); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeConfig,
				fmt.Sprintf("template line %d", p.line), err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfig, "failed to read template", err)
	}

	if err := p.finish(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfig, "invalid template", err)
	}
	return p.t, nil
}

type section int

const (
	sectionValues section = iota
	sectionStates
)

type templateParser struct {
	t       *Template
	line    int
	section section
	current *State
}

func (p *templateParser) feed(line string) error {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return nil
	}

	switch p.section {
	case sectionValues:
		if trimmed == "" {
			if len(p.t.values) > 0 {
				p.section = sectionStates
			}
			return nil
		}
		if strings.HasPrefix(line, "Value ") {
			return p.addValue(line)
		}
		if len(p.t.values) == 0 {
			return fmt.Errorf("expected Value declaration, got %q", trimmed)
		}
		// A state header directly after the values, without a blank line.
		p.section = sectionStates
		return p.feedState(line, trimmed)
	default:
		return p.feedState(line, trimmed)
	}
}

func (p *templateParser) feedState(line, trimmed string) error {
	if trimmed == "" {
		p.current = nil
		return nil
	}

	if ruleLineRe.MatchString(line) {
		if p.current == nil {
			return fmt.Errorf("rule %q outside of a state", trimmed)
		}
		rule, err := p.parseRule(trimmed)
		if err != nil {
			return err
		}
		p.current.Rules = append(p.current.Rules, rule)
		return nil
	}

	if line != trimmed || !stateNameRe.MatchString(trimmed) {
		return fmt.Errorf("invalid state name or rule %q", trimmed)
	}
	if _, dup := p.t.states[trimmed]; dup {
		return fmt.Errorf("duplicate state %q", trimmed)
	}
	if _, clash := p.t.index[trimmed]; clash {
		return fmt.Errorf("state %q shares its name with a value", trimmed)
	}
	p.current = &State{Name: trimmed}
	p.t.states[trimmed] = p.current
	p.t.order = append(p.t.order, trimmed)
	return nil
}

func (p *templateParser) addValue(line string) error {
	m := valueLineRe.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("malformed Value line %q", strings.TrimSpace(line))
	}

	v := Value{Name: m[2], Regex: m[3]}
	if m[1] != "" {
		if err := v.applyOptions(m[1]); err != nil {
			return fmt.Errorf("value %s: %w", v.Name, err)
		}
	}
	if err := v.validate(); err != nil {
		return err
	}
	if _, dup := p.t.index[v.Name]; dup {
		return fmt.Errorf("duplicate value %q", v.Name)
	}

	p.t.index[v.Name] = len(p.t.values)
	p.t.values = append(p.t.values, v)
	if v.Persistence == FillUp {
		p.t.hasFillUp = true
	}
	return nil
}

func (p *templateParser) parseRule(text string) (*Rule, error) {
	pattern, actionText := text, ""
	if m := ruleActionRe.FindStringSubmatch(text); m != nil {
		pattern, actionText = m[1], m[2]
	}

	expanded, err := p.expand(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expanded)
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid regex: %w", pattern, err)
	}

	rule := &Rule{Pattern: pattern, Line: p.line, re: re}
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		vi, ok := p.t.index[name]
		if !ok {
			continue
		}
		rule.captures = append(rule.captures, captureGroup{group: i, value: vi})
	}
	if len(rule.captures) > 0 {
		rule.Actions = append(rule.Actions, Action{Kind: ActionCapture})
	}

	actions, err := parseActions(actionText)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", pattern, err)
	}
	rule.Actions = append(rule.Actions, actions...)
	return rule, nil
}

// expand substitutes ${Name} and $Name with the value's named group and
// unescapes "$$". A "$" not followed by a name is kept as an anchor.
func (p *templateParser) expand(pattern string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		rest := pattern[i+1:]
		switch {
		case strings.HasPrefix(rest, "$"):
			b.WriteByte('$')
			i++
		case strings.HasPrefix(rest, "{"):
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated ${ in %q", pattern)
			}
			name := rest[1:end]
			g, err := p.group(name)
			if err != nil {
				return "", err
			}
			b.WriteString(g)
			i += end + 1
		default:
			n := identLen(rest)
			if n == 0 {
				b.WriteByte('$')
				continue
			}
			g, err := p.group(rest[:n])
			if err != nil {
				return "", err
			}
			b.WriteString(g)
			i += n
		}
	}
	return b.String(), nil
}

func (p *templateParser) group(name string) (string, error) {
	vi, ok := p.t.index[name]
	if !ok {
		return "", fmt.Errorf("undeclared value %q", name)
	}
	return p.t.values[vi].group(), nil
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || (n > 0 && '0' <= c && c <= '9') {
			n++
			continue
		}
		break
	}
	return n
}

// parseActions turns "[LineOp][.RecordOp] [NextState]" or "Error [message]"
// into the ordered action list: record op first, then line op, then state.
func parseActions(text string) ([]Action, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	head, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)

	lineOp, recordOp := ActionKind(-1), ActionKind(-1)
	state := ""

	if l, r, dotted := strings.Cut(head, "."); dotted {
		lk, ok := lineOps[l]
		if !ok {
			return nil, fmt.Errorf("unknown line operation %q", l)
		}
		rk, ok := recordOps[r]
		if !ok {
			return nil, fmt.Errorf("unknown record operation %q", r)
		}
		lineOp, recordOp = lk, rk
	} else if lk, ok := lineOps[head]; ok {
		lineOp = lk
	} else if rk, ok := recordOps[head]; ok {
		recordOp = rk
	} else {
		if rest != "" {
			return nil, fmt.Errorf("unexpected %q after state %q", rest, head)
		}
		state = head
	}

	var actions []Action
	if lineOp == ActionError {
		msg := rest
		if unq, err := strconv.Unquote(rest); err == nil {
			msg = unq
		}
		if recordOp != -1 {
			actions = append(actions, Action{Kind: recordOp})
		}
		return append(actions, Action{Kind: ActionError, Message: msg}), nil
	}

	if state == "" && rest != "" {
		if strings.ContainsAny(rest, " \t") {
			return nil, fmt.Errorf("unexpected %q", rest)
		}
		state = rest
	}
	if lineOp == ActionContinue && state != "" {
		return nil, fmt.Errorf("Continue cannot change state (to %q)", state)
	}

	if recordOp != -1 {
		actions = append(actions, Action{Kind: recordOp})
	}
	if lineOp == ActionContinue {
		actions = append(actions, Action{Kind: ActionContinue})
	}
	if state != "" {
		actions = append(actions, Action{Kind: ActionNextState, State: state})
	}
	return actions, nil
}

func (p *templateParser) finish() error {
	t := p.t
	if len(t.values) == 0 {
		return fmt.Errorf("no Value declarations")
	}
	if _, ok := t.states[StateStart]; !ok {
		return fmt.Errorf("missing %s state", StateStart)
	}
	for _, reserved := range []string{StateEnd, StateEOF} {
		if s, ok := t.states[reserved]; ok && len(s.Rules) > 0 {
			return fmt.Errorf("state %s must not contain rules", reserved)
		}
	}

	for _, name := range t.order {
		for _, rule := range t.states[name].Rules {
			for _, a := range rule.Actions {
				if a.Kind != ActionNextState {
					continue
				}
				if a.State == StateEnd || a.State == StateEOF {
					continue
				}
				if _, ok := t.states[a.State]; !ok {
					return fmt.Errorf("state %s line %d: undefined next state %q", name, rule.Line, a.State)
				}
			}
		}
	}
	return nil
}
