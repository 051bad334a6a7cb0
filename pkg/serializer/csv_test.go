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
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/record"
)

var csvHeader = []string{"Port", "Description", "Lag", "OperState"}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "pe1.csv")
	rows := []record.Record{
		record.New(csvHeader, []string{"1/1/1", "'uplink", "7", "up"}),
		record.New(csvHeader, []string{"1/1/2", `'core, "east"`, "-", "down"}),
		record.New(csvHeader, []string{"1/1/3", "'two\nlines", "", "up - Active in LAG"}),
	}

	require.NoError(t, WriteCSV(rows, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Port,Description,Lag,OperState\n"+
		"1/1/1,'uplink,7,up\n"+
		`1/1/2,"'core, ""east""",-,down`+"\n"+
		"1/1/3,\"'two\nlines\",,up - Active in LAG\n", string(data))

	got, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, line := range got {
		assert.Len(t, line, len(csvHeader))
	}
	assert.Equal(t, `'core, "east"`, got[2][1])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteCSVErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		rows []record.Record
		path string
	}{
		{
			name: "no rows",
			rows: nil,
			path: filepath.Join(dir, "empty.csv"),
		},
		{
			name: "row wider than header",
			rows: []record.Record{
				record.New([]string{"Port"}, []string{"1/1/1"}),
				record.New([]string{"Port", "Lag"}, []string{"1/1/2", "-"}),
			},
			path: filepath.Join(dir, "wide.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteCSV(tt.rows, tt.path)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeWrite, apperrors.CodeOf(err))
			_, statErr := os.Stat(tt.path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestWriteCSVUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteCSV([]record.Record{record.New(csvHeader, []string{"a", "b", "c", "d"})},
		filepath.Join(blocker, "out.csv"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeWrite, apperrors.CodeOf(err))
}

func TestWriteCSVReplacesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pe1.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	require.NoError(t, WriteCSV([]record.Record{record.New([]string{"Port"}, []string{"1/1/1"})}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Port\n1/1/1\n", string(data))
}

func TestWriteCSVConcurrentDistinctPaths(t *testing.T) {
	dir := t.TempDir()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			rows := make([]record.Record, 200)
			for j := range rows {
				rows[j] = record.New([]string{"Port", "Owner"}, []string{name, name})
			}
			assert.NoError(t, WriteCSV(rows, filepath.Join(dir, name+".csv")))
		}()
	}
	wg.Wait()

	for i := range 8 {
		name := string(rune('a' + i))
		data, err := os.ReadFile(filepath.Join(dir, name+".csv"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		require.Len(t, lines, 201)
		for _, line := range lines[1:] {
			assert.Equal(t, name+","+name, line)
		}
	}
}

func TestCSVFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVFileWriter(path)
	assert.Equal(t, path, w.Path())

	var s Serializer = w
	require.NoError(t, s.Serialize(context.Background(), []record.Record{
		record.New([]string{"Port"}, []string{"1/1/1"}),
	}))

	err := s.Serialize(context.Background(), "not rows")
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Serialize(ctx, []record.Record{record.New([]string{"Port"}, []string{"x"})})
	assert.Equal(t, apperrors.ErrCodeWrite, apperrors.CodeOf(err))
}
