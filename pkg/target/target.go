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

// Package target models the units of collection: a captured log file or a
// live device, and discovers them from an input directory or a device list.
package target

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/netops-toolkit/portcsv/pkg/collector/file"
	"github.com/netops-toolkit/portcsv/pkg/defaults"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

// Kind distinguishes local files from live devices.
type Kind string

const (
	KindFile   Kind = "file"
	KindDevice Kind = "device"
)

// Target is a single unit of collection.
type Target struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Name identifies the target in logs and reports: the file name or the
	// device address.
	Name string `json:"name" yaml:"name"`
	// Path is the input file, set for KindFile.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Address is host or host:port, set for KindDevice.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// File returns a target reading the capture at path.
func File(path string) Target {
	return Target{Kind: KindFile, Name: filepath.Base(path), Path: path}
}

// Device returns a target for a live device.
func Device(address string) Target {
	return Target{Kind: KindDevice, Name: address, Address: address}
}

func (t Target) String() string {
	return string(t.Kind) + ":" + t.Name
}

// OutputName returns the CSV file name for the target. Files keep their
// base name with a .csv extension; devices are named
// {host}_{address}_{timestamp}.csv.
func (t Target) OutputName(host string, ts time.Time) string {
	if t.Kind == KindFile {
		base := filepath.Base(t.Path)
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	}
	if host == "" {
		host = t.Address
	}
	return fmt.Sprintf("%s_%s_%s.csv", sanitize(host), sanitize(t.Address), ts.Format(defaults.OutputTimeFormat))
}

var unsafeChars = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-", " ", "-",
)

func sanitize(s string) string {
	return unsafeChars.Replace(strings.TrimSpace(s))
}

// FromDirectory lists the files in dir whose extension is one of exts,
// matched case-insensitively, sorted by name.
func FromDirectory(dir string, exts []string) ([]Target, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfig, "failed to read input directory", err,
			map[string]any{"path": dir})
	}

	want := make([]string, len(exts))
	for i, e := range exts {
		want[i] = strings.ToLower(e)
	}

	var out []Target
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !slices.Contains(want, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		out = append(out, File(filepath.Join(dir, e.Name())))
	}
	return out, nil
}

// FromDeviceList reads one device address per line from path. Blank lines
// and # comments are ignored. A missing or empty list is a config error.
func FromDeviceList(path string) ([]Target, error) {
	lines, err := file.NewParser().GetLines(path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfig, "failed to read device list", err,
			map[string]any{"path": path})
	}
	if len(lines) == 0 {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeConfig, "device list is empty",
			map[string]any{"path": path})
	}

	out := make([]Target, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		addr := strings.Fields(l)[0]
		if seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, Device(addr))
	}
	return out, nil
}
