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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

func TestParseTemplate(t *testing.T) {
	tpl, err := ParseTemplate(`# comment
Value Required Port (\S+)
Value Filldown Chassis (\S+)
Value Fillup Site (\S+)
Value List,Key Alarm (\S+)
Value Description (.*)

Start
  ^Chassis\s+:\s+${Chassis}
  ^Port\s+:\s+$Port -> Continue
  ^Port\s+:\s+\S+\s+${Description}$$ -> Record Detail
  ^Oops -> Error "bad line"

Detail
  ^Alarm\s+:\s+${Alarm}
  ^$$ -> Next.Clearall Start
  ^Site\s+:\s+${Site} -> End
`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Port", "Chassis", "Site", "Alarm", "Description"}, tpl.Header())
	assert.Equal(t, []string{"Start", "Detail"}, tpl.States())

	port, ok := tpl.Value("Port")
	require.True(t, ok)
	assert.True(t, port.Required)
	assert.Equal(t, ResetPerRecord, port.Persistence)

	chassis, _ := tpl.Value("Chassis")
	assert.Equal(t, CarryForward, chassis.Persistence)
	assert.Equal(t, []string{"Filldown"}, chassis.Options())

	site, _ := tpl.Value("Site")
	assert.Equal(t, FillUp, site.Persistence)

	alarm, _ := tpl.Value("Alarm")
	assert.True(t, alarm.List)
	assert.True(t, alarm.Key)
	assert.Equal(t, []string{"List", "Key"}, alarm.Options())

	start, ok := tpl.State("Start")
	require.True(t, ok)
	require.Len(t, start.Rules, 4)

	assert.Equal(t, []Action{{Kind: ActionCapture}}, start.Rules[0].Actions)
	assert.Equal(t, []Action{{Kind: ActionCapture}, {Kind: ActionContinue}}, start.Rules[1].Actions)
	assert.Equal(t, []Action{
		{Kind: ActionCapture},
		{Kind: ActionRecord},
		{Kind: ActionNextState, State: "Detail"},
	}, start.Rules[2].Actions)
	assert.Equal(t, []Action{{Kind: ActionError, Message: "bad line"}}, start.Rules[3].Actions)
	assert.Equal(t, `^Port\s+:\s+(?P<Port>\S+)`, start.Rules[1].Regexp().String())
	assert.Equal(t, `^Port\s+:\s+\S+\s+(?P<Description>.*)$`, start.Rules[2].Regexp().String())

	detail, _ := tpl.State("Detail")
	assert.Equal(t, []Action{
		{Kind: ActionClearAll},
		{Kind: ActionNextState, State: "Start"},
	}, detail.Rules[1].Actions)
	assert.Equal(t, "^$", detail.Rules[1].Regexp().String())
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "no values",
			text: "Start\n  ^x\n",
		},
		{
			name: "missing start",
			text: "Value Port (\\S+)\n\nMain\n  ^${Port}\n",
		},
		{
			name: "undefined next state",
			text: "Value Port (\\S+)\n\nStart\n  ^${Port} -> Record Nowhere\n",
		},
		{
			name: "continue with state change",
			text: "Value Port (\\S+)\n\nStart\n  ^${Port} -> Continue Start\n",
		},
		{
			name: "unknown option",
			text: "Value Sticky Port (\\S+)\n\nStart\n  ^${Port}\n",
		},
		{
			name: "exclusive options",
			text: "Value Filldown,Fillup Port (\\S+)\n\nStart\n  ^${Port}\n",
		},
		{
			name: "duplicate value",
			text: "Value Port (\\S+)\nValue Port (\\d+)\n\nStart\n  ^${Port}\n",
		},
		{
			name: "value regex without parentheses",
			text: "Value Port \\S+\n\nStart\n  ^x\n",
		},
		{
			name: "undeclared value in rule",
			text: "Value Port (\\S+)\n\nStart\n  ^${Speed}\n",
		},
		{
			name: "invalid rule regex",
			text: "Value Port (\\S+)\n\nStart\n  ^(${Port}\n",
		},
		{
			name: "unknown record operation",
			text: "Value Port (\\S+)\n\nStart\n  ^${Port} -> Next.Save\n",
		},
		{
			name: "rules in End state",
			text: "Value Port (\\S+)\n\nStart\n  ^${Port}\n\nEnd\n  ^x\n",
		},
		{
			name: "duplicate state",
			text: "Value Port (\\S+)\n\nStart\n  ^${Port}\n\nStart\n  ^y\n",
		},
		{
			name: "garbage in value section",
			text: "Hello\nValue Port (\\S+)\n\nStart\n  ^${Port}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.text)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
		})
	}
}

func TestParseTemplateReservedStates(t *testing.T) {
	tpl, err := ParseTemplate("Value Port (\\S+)\n\nStart\n  ^${Port} -> End\n  ^x -> EOF\n\nEOF\n")
	require.NoError(t, err)
	_, ok := tpl.State(StateEOF)
	assert.True(t, ok)
}

func TestParseTemplateStateWithoutBlankLine(t *testing.T) {
	tpl, err := ParseTemplate("Value Port (\\S+)\nStart\n  ^Port ${Port} -> Record\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Start"}, tpl.States())
}

func TestLoad(t *testing.T) {
	tpl, err := Load(filepath.Join("testdata", "nokia_sros_show_port_detail.template"))
	require.NoError(t, err)
	assert.Equal(t, "Port", tpl.Header()[0])
	assert.Equal(t, "Description", tpl.Header()[1])

	_, err = Load(filepath.Join(t.TempDir(), "missing.template"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
}

func TestPersistenceString(t *testing.T) {
	assert.Equal(t, "Reset", ResetPerRecord.String())
	assert.Equal(t, "Filldown", CarryForward.String())
	assert.Equal(t, "Fillup", FillUp.String())
	assert.Equal(t, "Record", ActionRecord.String())
	assert.Equal(t, "Unknown", ActionKind(42).String())
}
