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

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/orchestrator"
	"github.com/netops-toolkit/portcsv/pkg/serializer"
)

const testTemplate = `Value Required Port (\S+)
Value Description (.*)
Value OperState (.+)

Start
  ^Port\s+:\s+${Port}
  ^Description\s+:\s+${Description}
  ^Oper State\s+:\s+${OperState} -> Record
`

const testCapture = `Port : 1/1/1
Description : core uplink
Oper State : up - Active in LAG 10
Port : 1/1/2
Description : spare
Oper State : down
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runCLIWithInput(t, context.Background(), strings.NewReader(stdin), args...)
}

func runCLIWithInput(t *testing.T, ctx context.Context, in io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envUsername, "")
	t.Setenv(envPassword, "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	cmd.ErrWriter = io.Discard
	cmd.Reader = in

	err := cmd.Run(ctx, append([]string{name, "--no-color", "--log-level", "error"}, args...))
	return out.String(), err
}

// interruptingReader cancels the run on the first read and then blocks
// like a terminal nobody types into.
type interruptingReader struct {
	cancel  context.CancelFunc
	release chan struct{}
}

func newInterruptingReader(t *testing.T, cancel context.CancelFunc) *interruptingReader {
	r := &interruptingReader{cancel: cancel, release: make(chan struct{})}
	t.Cleanup(func() { close(r.release) })
	return r
}

func (r *interruptingReader) Read([]byte) (int, error) {
	r.cancel()
	<-r.release
	return 0, io.EOF
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type workspace struct {
	input, output, template string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		input:    filepath.Join(dir, "Input"),
		output:   filepath.Join(dir, "Output"),
		template: writeFile(t, filepath.Join(dir, "Lib", "port.template"), testTemplate),
	}
	writeFile(t, filepath.Join(ws.input, "pe1.log"), testCapture)
	writeFile(t, filepath.Join(ws.input, "pe2.txt"), testCapture)
	writeFile(t, filepath.Join(ws.input, "notes.md"), "ignored")
	return ws
}

func TestLocal(t *testing.T) {
	ws := newWorkspace(t)
	reportPath := filepath.Join(t.TempDir(), "report.json")
	metricsPath := filepath.Join(t.TempDir(), "portcsv.prom")

	out, err := runCLI(t, "",
		"--report", reportPath, "--report-format", "json", "--metrics-file", metricsPath,
		"local", "--input", ws.input, "--output", ws.output, "--template", ws.template)
	require.NoError(t, err)

	assert.Contains(t, out, "Number of files in the directory : 2")
	assert.Contains(t, out, "[SUCCESS] Processed pe1.log to CSV (2 records).")
	assert.Contains(t, out, "Processed 2 targets: 2 succeeded, 0 failed, 4 records")

	data, err := os.ReadFile(filepath.Join(ws.output, "pe1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Port,Description,Lag,OperState\n"+
		"1/1/1,'core uplink,10,up\n"+
		"1/1/2,'spare,-,down\n", string(data))
	assert.FileExists(t, filepath.Join(ws.output, "pe2.csv"))
	assert.NoFileExists(t, filepath.Join(ws.output, "notes.csv"))

	report, err := serializer.FromFile[orchestrator.Report](reportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.Targets)
	assert.Equal(t, 4, report.Summary.Records)
	assert.NotEmpty(t, report.Metadata["run-id"])

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "portcsv_targets_total")
}

func TestLocal_ReportToStdout(t *testing.T) {
	ws := newWorkspace(t)

	out, err := runCLI(t, "", "--report", "-", "--report-format", "yaml",
		"local", "--input", ws.input, "--output", ws.output, "--template", ws.template)
	require.NoError(t, err)
	assert.Contains(t, out, "kind: CollectionReport")
}

func TestLocal_ConfigErrors(t *testing.T) {
	ws := newWorkspace(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input directory", []string{"local", "--input", filepath.Join(ws.input, "absent"), "--template", ws.template}},
		{"missing template", []string{"local", "--input", ws.input, "--output", ws.output, "--template", ws.template + ".absent"}},
		{"bad report format", []string{"--report-format", "xml", "local", "--input", ws.input}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
		})
	}

	entries, _ := os.ReadDir(ws.output)
	assert.Empty(t, entries)
}

func TestLocal_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, filepath.Join(dir, "port.template"), testTemplate)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Input"), 0o755))

	out, err := runCLI(t, "", "local", "--input", filepath.Join(dir, "Input"), "--template", tpl)
	require.NoError(t, err)
	assert.Contains(t, out, "No capture files found")
}

func TestRemote_PromptsAndIsolatesFailures(t *testing.T) {
	ws := newWorkspace(t)
	devices := writeFile(t, filepath.Join(t.TempDir(), "devices.txt"), "# lab\n127.0.0.1:1\n\n")

	out, err := runCLI(t, "admin\nsecret\n",
		"remote", "--devices", devices, "--template", ws.template, "--output", ws.output,
		"--dial-timeout", "2s")
	require.NoError(t, err)

	assert.Contains(t, out, "Number of devices : 1")
	assert.Contains(t, out, "Enter username: ")
	assert.Contains(t, out, "Enter password: ")
	assert.Contains(t, out, "[ERROR] 127.0.0.1:1: host unreachable")
	assert.Contains(t, out, "(UNREACHABLE)")
	assert.Contains(t, out, "Processed 1 targets: 0 succeeded, 1 failed, 0 records")
}

func TestRemote_Errors(t *testing.T) {
	ws := newWorkspace(t)
	devices := writeFile(t, filepath.Join(t.TempDir(), "devices.txt"), "127.0.0.1:1\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{
			name: "missing device list",
			args: []string{"remote", "--devices", devices + ".absent", "--template", ws.template},
		},
		{
			name:  "empty username",
			stdin: "\n",
			args:  []string{"remote", "--devices", devices, "--template", ws.template},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
		})
	}
}

func TestMenu(t *testing.T) {
	ws := newWorkspace(t)
	cfg := writeFile(t, filepath.Join(t.TempDir(), "portcsv.yaml"),
		"input:\n  dir: "+ws.input+"\noutput:\n  dir: "+ws.output+"\ntemplate: "+ws.template+"\n")

	tests := []struct {
		name  string
		stdin string
		want  []string
	}{
		{
			name:  "exit",
			stdin: "3\n",
			want:  []string{"1. Process Local Port Details to CSV", "Exiting the program. Goodbye!"},
		},
		{
			name:  "invalid choice",
			stdin: "9\n\n3\n",
			want:  []string{"Invalid choice. Please try again.", "Press Enter to continue...", "Goodbye!"},
		},
		{
			name:  "local run",
			stdin: "1\n\n3\n",
			want:  []string{"Processing local log files...", "[SUCCESS] Processed pe1.log", "Goodbye!"},
		},
		{
			name:  "input ends",
			stdin: "",
			want:  []string{"Enter your choice (1-3): "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.stdin, "--config", cfg, "menu")
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestMenu_RunErrorsDoNotExit(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, filepath.Join(dir, "portcsv.yaml"), "input:\n  dir: "+filepath.Join(dir, "absent")+"\n")

	out, err := runCLI(t, "1\n\n3\n", "--config", cfg, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "[ERROR] failed to read input directory")
	assert.Contains(t, out, "Goodbye!")
}

func TestRoot_NotTerminalShowsHelp(t *testing.T) {
	out, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "remote")
}

func TestMenu_InterruptAtPrompt(t *testing.T) {
	ws := newWorkspace(t)
	cfg := writeFile(t, filepath.Join(t.TempDir(), "portcsv.yaml"),
		"input:\n  dir: "+ws.input+"\ntemplate: "+ws.template+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := runCLIWithInput(t, ctx, newInterruptingReader(t, cancel), "--config", cfg, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter your choice (1-3): ")
	assert.NotContains(t, out, "Invalid choice")
}

func TestRemote_InterruptAtCredentials(t *testing.T) {
	ws := newWorkspace(t)
	devices := writeFile(t, filepath.Join(t.TempDir(), "devices.txt"), "127.0.0.1:1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := runCLIWithInput(t, ctx, newInterruptingReader(t, cancel),
		"remote", "--devices", devices, "--template", ws.template, "--output", ws.output)
	require.NoError(t, err)
	assert.Contains(t, out, "Enter username: ")
	assert.NotContains(t, out, "[ERROR]")
}
