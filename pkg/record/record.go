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

// Package record defines the insertion-ordered string record produced by the
// extraction engine and consumed by the row transformer and the CSV sink.
package record

// Field is a single named column value.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Record maps column names to string values, preserving insertion order.
// Lookups are linear; records hold a few dozen columns at most.
type Record []Field

// New builds a record from parallel name and value slices.
// Missing values are treated as empty strings.
func New(names []string, values []string) Record {
	r := make(Record, len(names))
	for i, n := range names {
		r[i].Name = n
		if i < len(values) {
			r[i].Value = values[i]
		}
	}
	return r
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r)
}

// Keys returns the column names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Name
	}
	return keys
}

// Values returns the column values in order.
func (r Record) Values() []string {
	vals := make([]string, len(r))
	for i, f := range r {
		vals[i] = f.Value
	}
	return vals
}

// Index returns the position of the named column, or -1.
func (r Record) Index(name string) int {
	for i, f := range r {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the named column and whether it exists.
func (r Record) Get(name string) (string, bool) {
	if i := r.Index(name); i >= 0 {
		return r[i].Value, true
	}
	return "", false
}

// Set assigns a value to an existing column or appends a new one.
func (r Record) Set(name, value string) Record {
	if i := r.Index(name); i >= 0 {
		r[i].Value = value
		return r
	}
	return append(r, Field{Name: name, Value: value})
}

// Insert places a column at position pos, clamped to [0, Len()].
// An existing column with the same name is removed first.
func (r Record) Insert(pos int, name, value string) Record {
	if i := r.Index(name); i >= 0 {
		r = append(r[:i:i], r[i+1:]...)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(r) {
		pos = len(r)
	}
	out := make(Record, 0, len(r)+1)
	out = append(out, r[:pos]...)
	out = append(out, Field{Name: name, Value: value})
	out = append(out, r[pos:]...)
	return out
}

// Clone returns a copy that shares no backing storage with r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}
