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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testSummary struct {
	Name     string        `json:"name" yaml:"name"`
	Count    int           `json:"count" yaml:"count"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Tags     []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Nested   *testNested   `json:"nested,omitempty" yaml:"nested,omitempty"`
}

type testNested struct {
	Path string `yaml:"path"`
}

func sampleSummary() testSummary {
	return testSummary{
		Name:     "run",
		Count:    3,
		Started:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration: 1500 * time.Millisecond,
		Tags:     []string{"a", "b"},
		Nested:   &testNested{Path: "Output/x.csv"},
	}
}

func TestWriterSerialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out string) {
				var got testSummary
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				assert.Equal(t, "run", got.Name)
				assert.Equal(t, 3, got.Count)
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			check: func(t *testing.T, out string) {
				var got testSummary
				require.NoError(t, yaml.Unmarshal([]byte(out), &got))
				assert.Equal(t, "run", got.Name)
				assert.Equal(t, []string{"a", "b"}, got.Tags)
			},
		},
		{
			name:   "table",
			format: FormatTable,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "FIELD")
				assert.Contains(t, out, "name")
				assert.Contains(t, out, "tags.[1]")
				assert.Contains(t, out, "nested.path")
				assert.Contains(t, out, "Output/x.csv")
				assert.Contains(t, out, "2025-01-02T03:04:05Z")
				assert.Contains(t, out, "1.5s")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(tt.format, &buf)
			require.NoError(t, w.Serialize(context.Background(), sampleSummary()))
			tt.check(t, buf.String())
		})
	}
}

func TestWriterTableEmptyAndNil(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	require.NoError(t, w.Serialize(context.Background(), struct{}{}))
	assert.Equal(t, "<empty>\n", buf.String())

	buf.Reset()
	require.NoError(t, w.Serialize(context.Background(), 42))
	assert.Contains(t, buf.String(), "value")

	buf.Reset()
	require.NoError(t, w.Serialize(context.Background(), testSummary{Name: "x"}))
	assert.Contains(t, buf.String(), "nested")
}

func TestWriterCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestNewWriterUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	assert.Equal(t, FormatJSON, w.format)
	assert.Equal(t, os.Stdout, NewWriter(FormatJSON, nil).output)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), strings.Join(SupportedFormats(), ", "))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")

	w := NewFileWriterOrStdout(FormatJSON, path)
	require.NoError(t, w.Serialize(context.Background(), sampleSummary()))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "run"`)

	assert.Equal(t, os.Stdout, NewFileWriterOrStdout(FormatJSON, "  ").output)
}
