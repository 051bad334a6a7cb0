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

package transform

import (
	"regexp"
	"strings"

	"github.com/netops-toolkit/portcsv/pkg/record"
)

const (
	// ColumnOperState is the source column inspected for LAG membership.
	ColumnOperState = "OperState"
	// ColumnLag is the derived column.
	ColumnLag = "Lag"
	// LagPosition is the zero-based index of the derived column.
	LagPosition = 2
	// NoLag is the Lag value for ports outside any LAG.
	NoLag = "-"
	// TextMarker is prefixed to the second column.
	TextMarker = "'"
)

var lagMembership = regexp.MustCompile(`-(\s+(?:Active|Standby) in LAG\s+(\d+))`)

// Row returns the transformed copy of rec. The input is not modified.
func Row(rec record.Record) record.Record {
	row := rec.Clone()

	state, _ := row.Get(ColumnOperState)
	lag := NoLag
	if strings.Contains(state, "Active in LAG") || strings.Contains(state, "Standby in LAG") {
		// A membership phrase the pattern cannot read leaves Lag empty
		// and OperState untouched.
		lag = ""
		if m := lagMembership.FindStringSubmatch(state); m != nil {
			lag = m[2]
			row = row.Set(ColumnOperState, strings.Fields(state)[0])
		}
	}

	row = row.Insert(LagPosition, ColumnLag, lag)
	if len(row) > 1 {
		row[1].Value = TextMarker + row[1].Value
	}
	return row
}

// Rows transforms every record in order.
func Rows(recs []record.Record) []record.Record {
	out := make([]record.Record, len(recs))
	for i, r := range recs {
		out[i] = Row(r)
	}
	return out
}
