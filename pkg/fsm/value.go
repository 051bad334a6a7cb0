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
	"fmt"
	"regexp"
	"strings"
)

// Persistence controls how a value behaves once a record is emitted.
type Persistence int

const (
	// ResetPerRecord values are cleared after every emitted record.
	ResetPerRecord Persistence = iota
	// CarryForward values keep their last assignment across records.
	CarryForward
	// FillUp values are cleared per record but, when assigned, are copied
	// into preceding records that have no value for the column.
	FillUp
)

// String returns the template keyword for the persistence mode.
func (p Persistence) String() string {
	switch p {
	case CarryForward:
		return "Filldown"
	case FillUp:
		return "Fillup"
	default:
		return "Reset"
	}
}

// Value option keywords.
const (
	optFilldown = "Filldown"
	optFillup   = "Fillup"
	optRequired = "Required"
	optList     = "List"
	optKey      = "Key"
)

// ListSeparator joins accumulated List values when a record is produced.
const ListSeparator = "; "

var valueNameRe = regexp.MustCompile(`^\w+$`)

// Value is a capture variable declaration.
type Value struct {
	// Name is the column name.
	Name string
	// Regex is the declared pattern, a single parenthesised group.
	Regex string
	// Persistence is the retention mode across records.
	Persistence Persistence
	// Required discards records where the value is empty.
	Required bool
	// List accumulates every match within a record.
	List bool
	// Key marks the value as part of the row identity.
	Key bool
}

// Options returns the declared option keywords in canonical order.
func (v Value) Options() []string {
	var opts []string
	switch v.Persistence {
	case CarryForward:
		opts = append(opts, optFilldown)
	case FillUp:
		opts = append(opts, optFillup)
	}
	if v.Required {
		opts = append(opts, optRequired)
	}
	if v.List {
		opts = append(opts, optList)
	}
	if v.Key {
		opts = append(opts, optKey)
	}
	return opts
}

// group returns the value regex as a named capture group.
func (v Value) group() string {
	return "(?P<" + v.Name + ">" + v.Regex[1:]
}

// applyOptions parses a comma separated option list.
func (v *Value) applyOptions(spec string) error {
	seen := make(map[string]bool)
	for _, opt := range strings.Split(spec, ",") {
		opt = strings.TrimSpace(opt)
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true

		switch opt {
		case optFilldown:
			if v.Persistence == FillUp {
				return fmt.Errorf("options %s and %s are exclusive", optFilldown, optFillup)
			}
			v.Persistence = CarryForward
		case optFillup:
			if v.Persistence == CarryForward {
				return fmt.Errorf("options %s and %s are exclusive", optFilldown, optFillup)
			}
			v.Persistence = FillUp
		case optRequired:
			v.Required = true
		case optList:
			v.List = true
		case optKey:
			v.Key = true
		default:
			return fmt.Errorf("unknown option %q", opt)
		}
	}
	return nil
}

// validate checks the declaration is usable in a rule.
func (v *Value) validate() error {
	if !valueNameRe.MatchString(v.Name) {
		return fmt.Errorf("invalid value name %q", v.Name)
	}
	if len(v.Regex) < 2 || v.Regex[0] != '(' || v.Regex[len(v.Regex)-1] != ')' ||
		strings.HasSuffix(v.Regex, `\)`) {
		return fmt.Errorf("value %s: regex %q must be enclosed in parentheses", v.Name, v.Regex)
	}
	if _, err := regexp.Compile(v.Regex); err != nil {
		return fmt.Errorf("value %s: invalid regex: %w", v.Name, err)
	}
	return nil
}
