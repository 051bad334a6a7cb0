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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netops-toolkit/portcsv/pkg/defaults"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, defaults.InputDir, c.Input.Dir)
	assert.Equal(t, defaults.InputExtensions, c.Input.Extensions)
	assert.Equal(t, defaults.OutputDir, c.Output.Dir)
	assert.Equal(t, defaults.TemplateFile, c.Template)
	assert.Equal(t, defaults.DeviceList, c.Devices)
	assert.Equal(t, defaults.Workers, c.Workers)
	assert.Equal(t, "yaml", c.Report.Format)
	assert.Equal(t, defaults.SSHPort, c.SSH.Port)
	assert.Equal(t, defaults.Command, c.SSH.Command)
	assert.Equal(t, defaults.PagingCommand, c.SSH.PagingCommand)
	assert.Equal(t, defaults.SSHReadTimeout, c.SSH.ReadTimeout)
	assert.NoError(t, c.Validate())
}

func TestDefault_ExtensionsNotShared(t *testing.T) {
	c := Default()
	c.Input.Extensions[0] = ".changed"
	assert.Equal(t, ".log", defaults.InputExtensions[0])
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "portcsv.yaml", `
input:
  dir: captures
output:
  dir: csv
workers: 8
ssh:
  username: admin
  port: 2222
  readTimeout: 2m
  dialRate: 5
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "captures", c.Input.Dir)
	assert.Equal(t, defaults.InputExtensions, c.Input.Extensions)
	assert.Equal(t, "csv", c.Output.Dir)
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, "admin", c.SSH.Username)
	assert.Equal(t, 2222, c.SSH.Port)
	assert.Equal(t, 2*time.Minute, c.SSH.ReadTimeout)
	assert.Equal(t, defaults.SSHDialTimeout, c.SSH.DialTimeout)
	assert.Equal(t, 5.0, c.SSH.DialRate)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "portcsv.json", `{"template": "rules.template", "workers": 2}`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rules.template", c.Template)
	assert.Equal(t, 2, c.Workers)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown field", "c.yaml", "password: secret\n"},
		{"malformed", "c.yaml", "workers: [\n"},
		{"negative workers", "c.yaml", "workers: -1\n"},
		{"bad port", "c.yaml", "ssh:\n  port: 70000\n"},
		{"negative timeout", "c.yaml", "ssh:\n  readTimeout: -1s\n"},
		{"negative rate", "c.yaml", "ssh:\n  dialRate: -2\n"},
		{"bad report format", "c.yaml", "report:\n  format: xml\n"},
		{"bad extension", "c.yaml", "input:\n  extensions: [log]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
}

func TestSessionConfig(t *testing.T) {
	c := Default()
	c.SSH.KnownHostsFile = "/etc/ssh/known_hosts"

	s := c.SessionConfig("admin", "secret")
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, "secret", s.Password)
	assert.Equal(t, defaults.SSHPort, s.Port)
	assert.Equal(t, defaults.Command, s.Command)
	assert.Equal(t, defaults.PagingCommand, s.PagingCommand)
	assert.Equal(t, "/etc/ssh/known_hosts", s.KnownHostsFile)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, filepath.Join(home, ".ssh/known_hosts"), expandHome("~/.ssh/known_hosts"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "", expandHome(""))
}
