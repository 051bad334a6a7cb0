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

// Package header provides the common envelope for documents portcsv emits
// besides the CSV files themselves, currently the collection report.
//
// The Header carries a Kind, an APIVersion and a flat string Metadata map:
//
//	h := header.New(
//	    header.WithKind(header.KindCollectionReport),
//	    header.WithAPIVersion("portcsv.io/v1"),
//	    header.WithMetadata("runID", id),
//	)
//
// Init stamps the metadata with an RFC3339 UTC timestamp and the tool version:
//
//	var h header.Header
//	h.Init(header.KindCollectionReport, "portcsv.io/v1", version)
//
// Serialized as YAML:
//
//	kind: CollectionReport
//	apiVersion: portcsv.io/v1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v1.0.0
package header
