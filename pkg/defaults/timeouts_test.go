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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"SSHDialTimeout", SSHDialTimeout, 5 * time.Second, 60 * time.Second},
		{"SSHPromptTimeout", SSHPromptTimeout, 5 * time.Second, 60 * time.Second},
		{"SSHReadTimeout", SSHReadTimeout, 30 * time.Second, 5 * time.Minute},
		{"SSHLogoutTimeout", SSHLogoutTimeout, 500 * time.Millisecond, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestSSHTimeoutRelationships(t *testing.T) {
	// The command read timeout covers the longest wait of a session.
	if SSHPromptTimeout >= SSHReadTimeout {
		t.Errorf("SSHPromptTimeout (%v) should be less than SSHReadTimeout (%v)",
			SSHPromptTimeout, SSHReadTimeout)
	}
	if SSHLogoutTimeout >= SSHPromptTimeout {
		t.Errorf("SSHLogoutTimeout (%v) should be less than SSHPromptTimeout (%v)",
			SSHLogoutTimeout, SSHPromptTimeout)
	}
}

func TestCollectionDefaults(t *testing.T) {
	if Workers < 1 {
		t.Errorf("Workers must be positive, got %d", Workers)
	}
	if Command == "" {
		t.Error("Command must not be empty")
	}
	if len(InputExtensions) == 0 {
		t.Error("InputExtensions must not be empty")
	}
	if _, err := time.Parse(OutputTimeFormat, time.Now().Format(OutputTimeFormat)); err != nil {
		t.Errorf("OutputTimeFormat does not round-trip: %v", err)
	}
}
