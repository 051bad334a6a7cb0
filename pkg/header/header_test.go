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

package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindCollectionReport),
		WithAPIVersion("portcsv.io/v1"),
		WithMetadata("runID", "abc"),
	)

	if h.Kind != KindCollectionReport {
		t.Errorf("expected kind %s, got %s", KindCollectionReport, h.Kind)
	}
	if h.APIVersion != "portcsv.io/v1" {
		t.Errorf("unexpected apiVersion %q", h.APIVersion)
	}
	if h.Metadata["runID"] != "abc" {
		t.Errorf("expected runID metadata, got %v", h.Metadata)
	}
}

func TestInit(t *testing.T) {
	h := &Header{Metadata: map[string]string{"stale": "x"}}
	h.Init(KindCollectionReport, "portcsv.io/v1", "v1.2.3")

	if _, ok := h.Metadata["stale"]; ok {
		t.Error("expected Init to replace existing metadata")
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("unexpected version %q", h.Metadata["version"])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata["timestamp"]); err != nil {
		t.Errorf("timestamp is not RFC3339: %v", err)
	}

	h.Init(KindCollectionReport, "portcsv.io/v1", "")
	if _, ok := h.Metadata["version"]; ok {
		t.Error("expected no version key for empty version")
	}
}

func TestKindIsValid(t *testing.T) {
	valid := KindCollectionReport
	if !valid.IsValid() {
		t.Error("expected CollectionReport to be valid")
	}
	invalid := Kind("PortTable")
	if invalid.IsValid() {
		t.Error("expected PortTable to be invalid")
	}
}
