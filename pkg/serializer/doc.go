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

// Package serializer writes extracted rows and run reports, and reads
// structured configuration files.
//
// # CSV
//
// WriteCSV writes one CSV file per target. The header comes from the first
// row's column names; every row must have the same width. Output is staged
// in a temporary file next to the destination and renamed into place, so a
// failed write never leaves a partial file:
//
//	if err := serializer.WriteCSV(rows, "Output/pe1.csv"); err != nil {
//	    return err // code WRITE
//	}
//
// CSVFileWriter adapts WriteCSV to the Serializer interface.
//
// # Reports
//
// Writer encodes any value as JSON, YAML or a flattened FIELD/VALUE table:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// An empty path writes to stdout.
//
// # Reading
//
// Reader decodes JSON or YAML; FromFile picks the format from the file
// extension:
//
//	cfg, err := serializer.FromFile[config.File]("portcsv.yaml")
//
// Extension mapping:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table (write only)
//   - Other → JSON (default)
package serializer
