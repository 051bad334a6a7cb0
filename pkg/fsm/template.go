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
	"regexp"
)

// Reserved state names.
const (
	StateStart = "Start"
	StateEnd   = "End"
	StateEOF   = "EOF"
)

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	// ActionCapture assigns the rule's named groups to their values.
	ActionCapture ActionKind = iota
	// ActionRecord emits the current values as a record.
	ActionRecord
	// ActionClear resets all values except carry-forward ones.
	ActionClear
	// ActionClearAll resets every value.
	ActionClearAll
	// ActionNextState switches the active state after the line.
	ActionNextState
	// ActionContinue re-scans the remaining rules with the same line.
	ActionContinue
	// ActionError aborts the parse.
	ActionError
)

var actionNames = map[ActionKind]string{
	ActionCapture:   "Capture",
	ActionRecord:    "Record",
	ActionClear:     "Clear",
	ActionClearAll:  "Clearall",
	ActionNextState: "NextState",
	ActionContinue:  "Continue",
	ActionError:     "Error",
}

// String returns the action name.
func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Action is one step executed when a rule matches.
type Action struct {
	Kind ActionKind
	// State is the target of ActionNextState.
	State string
	// Message is the text of ActionError.
	Message string
}

// Rule is a line pattern and the ordered actions applied on match.
type Rule struct {
	// Pattern is the rule regex as written in the template.
	Pattern string
	// Line is the template line number, for diagnostics.
	Line    int
	Actions []Action

	re       *regexp.Regexp
	captures []captureGroup
}

type captureGroup struct {
	group int // submatch index
	value int // index into Template.values
}

// Regexp returns the compiled pattern with values substituted.
func (r *Rule) Regexp() *regexp.Regexp {
	return r.re
}

// State is a named, ordered rule list.
type State struct {
	Name  string
	Rules []*Rule
}

// Template is a loaded rule set. It is immutable and safe for concurrent use.
type Template struct {
	values []Value
	index  map[string]int
	states map[string]*State
	order  []string

	hasFillUp bool
}

// Header returns the value names in declaration order. This is the column
// order of every record produced from the template.
func (t *Template) Header() []string {
	h := make([]string, len(t.values))
	for i, v := range t.values {
		h[i] = v.Name
	}
	return h
}

// Values returns a copy of the value declarations.
func (t *Template) Values() []Value {
	out := make([]Value, len(t.values))
	copy(out, t.values)
	return out
}

// Value returns the declaration of the named value.
func (t *Template) Value(name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok {
		return Value{}, false
	}
	return t.values[i], true
}

// States returns state names in declaration order.
func (t *Template) States() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// State returns the named state.
func (t *Template) State(name string) (*State, bool) {
	s, ok := t.states[name]
	return s, ok
}
