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
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/record"
)

// WriteCSV writes rows to path as CSV with a header taken from the first
// row. The file appears at path only if every row was written.
func WriteCSV(rows []record.Record, path string) error {
	if len(rows) == 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeWrite, "no rows to write",
			map[string]any{"path": path})
	}

	header := rows[0].Keys()
	for i, r := range rows {
		if r.Len() != len(header) {
			return apperrors.NewWithContext(apperrors.ErrCodeWrite, "row width differs from header",
				map[string]any{"path": path, "row": i, "width": r.Len(), "header": len(header)})
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeWrite, "failed to create output directory", err,
			map[string]any{"path": dir})
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeWrite, "failed to create output file", err,
			map[string]any{"path": path})
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		return writeFailed(path, err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return writeFailed(path, err)
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return writeFailed(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return writeFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeFailed(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return writeFailed(path, err)
	}
	committed = true
	return nil
}

func writeFailed(path string, err error) error {
	return apperrors.WrapWithContext(apperrors.ErrCodeWrite, "failed to write output file", err,
		map[string]any{"path": path})
}

// CSVFileWriter is a Serializer that writes []record.Record to one file.
type CSVFileWriter struct {
	path string
}

// NewCSVFileWriter returns a writer for path.
func NewCSVFileWriter(path string) *CSVFileWriter {
	return &CSVFileWriter{path: path}
}

// Path returns the destination file.
func (w *CSVFileWriter) Path() string {
	return w.path
}

// Serialize writes data, which must be a []record.Record.
func (w *CSVFileWriter) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, "write cancelled", err)
	}
	rows, ok := data.([]record.Record)
	if !ok {
		return apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("csv writer cannot serialize %T", data))
	}
	return WriteCSV(rows, w.path)
}
