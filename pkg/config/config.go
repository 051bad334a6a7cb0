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

// Package config loads the optional run configuration file.
//
// The file is YAML or JSON, chosen by extension, and every field is
// optional. Unknown fields are rejected. Command line flags override file
// values; file values override the built-in defaults.
//
//	input:
//	  dir: Input
//	  extensions: [.log, .txt]
//	output:
//	  dir: Output
//	template: Lib/nokia_sros_show_port_detail.template
//	devices: Lib/devices.txt
//	workers: 4
//	ssh:
//	  username: admin
//	  readTimeout: 90s
//	  knownHostsFile: ~/.ssh/known_hosts
//
// Passwords are never read from the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/netops-toolkit/portcsv/pkg/collector/ssh"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/serializer"
)

// Input selects local capture files.
type Input struct {
	Dir        string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Output is where CSV files are written.
type Output struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Report configures the per-run report document.
type Report struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// SSH holds device session settings.
type SSH struct {
	Username       string        `json:"username,omitempty" yaml:"username,omitempty"`
	Port           int           `json:"port,omitempty" yaml:"port,omitempty"`
	Command        string        `json:"command,omitempty" yaml:"command,omitempty"`
	PagingCommand  string        `json:"pagingCommand,omitempty" yaml:"pagingCommand,omitempty"`
	DialTimeout    time.Duration `json:"dialTimeout,omitempty" yaml:"dialTimeout,omitempty"`
	PromptTimeout  time.Duration `json:"promptTimeout,omitempty" yaml:"promptTimeout,omitempty"`
	ReadTimeout    time.Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	KnownHostsFile string        `json:"knownHostsFile,omitempty" yaml:"knownHostsFile,omitempty"`
	// DialRate limits new sessions per second. Zero disables the limit.
	DialRate float64 `json:"dialRate,omitempty" yaml:"dialRate,omitempty"`
}

// Config is the run configuration.
type Config struct {
	Input       Input  `json:"input,omitempty" yaml:"input,omitempty"`
	Output      Output `json:"output,omitempty" yaml:"output,omitempty"`
	Template    string `json:"template,omitempty" yaml:"template,omitempty"`
	Devices     string `json:"devices,omitempty" yaml:"devices,omitempty"`
	Workers     int    `json:"workers,omitempty" yaml:"workers,omitempty"`
	Report      Report `json:"report,omitempty" yaml:"report,omitempty"`
	MetricsFile string `json:"metricsFile,omitempty" yaml:"metricsFile,omitempty"`
	SSH         SSH    `json:"ssh,omitempty" yaml:"ssh,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads path and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfig, "config file not found", err,
			map[string]any{"path": path})
	}

	c, err := serializer.FromFile[Config](path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfig, "invalid config file", err,
			map[string]any{"path": path})
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyDefaults sets every zero field to its default.
func (c *Config) ApplyDefaults() {
	if c.Input.Dir == "" {
		c.Input.Dir = defaults.InputDir
	}
	if len(c.Input.Extensions) == 0 {
		c.Input.Extensions = append([]string(nil), defaults.InputExtensions...)
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaults.OutputDir
	}
	if c.Template == "" {
		c.Template = defaults.TemplateFile
	}
	if c.Devices == "" {
		c.Devices = defaults.DeviceList
	}
	if c.Workers == 0 {
		c.Workers = defaults.Workers
	}
	if c.Report.Format == "" {
		c.Report.Format = string(serializer.FormatYAML)
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = defaults.SSHPort
	}
	if c.SSH.Command == "" {
		c.SSH.Command = defaults.Command
	}
	if c.SSH.PagingCommand == "" {
		c.SSH.PagingCommand = defaults.PagingCommand
	}
	if c.SSH.DialTimeout == 0 {
		c.SSH.DialTimeout = defaults.SSHDialTimeout
	}
	if c.SSH.PromptTimeout == 0 {
		c.SSH.PromptTimeout = defaults.SSHPromptTimeout
	}
	if c.SSH.ReadTimeout == 0 {
		c.SSH.ReadTimeout = defaults.SSHReadTimeout
	}
	c.SSH.KnownHostsFile = expandHome(c.SSH.KnownHostsFile)
}

// Validate reports the first invalid field as a CONFIG error.
func (c *Config) Validate() error {
	invalid := func(field string, v any) error {
		return apperrors.NewWithContext(apperrors.ErrCodeConfig,
			fmt.Sprintf("invalid %s: %v", field, v), map[string]any{"field": field})
	}

	if c.Workers < 1 {
		return invalid("workers", c.Workers)
	}
	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		return invalid("ssh.port", c.SSH.Port)
	}
	if c.SSH.DialTimeout < 0 {
		return invalid("ssh.dialTimeout", c.SSH.DialTimeout)
	}
	if c.SSH.PromptTimeout < 0 {
		return invalid("ssh.promptTimeout", c.SSH.PromptTimeout)
	}
	if c.SSH.ReadTimeout < 0 {
		return invalid("ssh.readTimeout", c.SSH.ReadTimeout)
	}
	if c.SSH.DialRate < 0 {
		return invalid("ssh.dialRate", c.SSH.DialRate)
	}
	if _, err := serializer.ParseFormat(c.Report.Format); err != nil {
		return invalid("report.format", c.Report.Format)
	}
	for _, ext := range c.Input.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid("input.extensions", ext)
		}
	}
	return nil
}

// SessionConfig returns the SSH session settings for the given credentials.
func (c *Config) SessionConfig(username, password string) ssh.Config {
	return ssh.Config{
		Username:       username,
		Password:       password,
		Port:           c.SSH.Port,
		Command:        c.SSH.Command,
		PagingCommand:  c.SSH.PagingCommand,
		DialTimeout:    c.SSH.DialTimeout,
		PromptTimeout:  c.SSH.PromptTimeout,
		ReadTimeout:    c.SSH.ReadTimeout,
		KnownHostsFile: c.SSH.KnownHostsFile,
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
