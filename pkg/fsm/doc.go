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

// Package fsm implements the rule-driven, stateful text extraction engine that
// turns semi-structured CLI output into flat records.
//
// # Templates
//
// A template declares capture values followed by named states. The format is
// line oriented and compatible with the TextFSM templates network teams
// already maintain:
//
//	# show port detail
//	Value Required Port (\S+)
//	Value Filldown Chassis (\S+)
//	Value OperState (\S+(?: \S+)*)
//
//	Start
//	  ^Chassis\s+:\s+${Chassis}
//	  ^Interface\s+:\s+${Port}
//	  ^Oper State\s+:\s+${OperState}\s{2,} -> Record
//
// Value options select the persistence mode of a value:
//
//   - (none): reset after every emitted record
//   - Filldown: carried forward into following records until reassigned
//   - Fillup: copied upward into earlier records that lack it
//   - Required: a record missing this value is discarded
//   - List: every match is accumulated; joined with ListSeparator in records
//   - Key: informational, marks columns that identify a row
//
// Rules are indented lines starting with "^". "${Name}" inside a rule is
// replaced with the value's regex as a named group, "$$" is a literal "$".
// Actions follow " -> " as "[LineOp][.RecordOp] [NextState]":
//
//   - LineOp: Next (default) consumes the line, Continue keeps scanning the
//     remaining rules of the state with the same line, Error aborts the parse
//   - RecordOp: NoRecord (default), Record, Clear, Clearall
//   - NextState: any declared state, End (stop, no trailing record) or EOF
//
// Every template needs a Start state. Declaring an empty EOF state
// suppresses the record otherwise emitted at end of input.
//
// # Parsing
//
// Parser walks the input once. Records are produced lazily through an
// iterator so callers can stream them:
//
//	tpl, err := fsm.Load("Lib/nokia_sros_show_port_detail.template")
//	if err != nil {
//	    return err
//	}
//	for rec, err := range fsm.NewParser(tpl).Records(r) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec.Values())
//	}
//
// A Template is immutable after loading and safe to share between goroutines.
// Each Records call owns its own cursor.
package fsm
