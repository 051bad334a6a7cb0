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

package collector

import (
	"context"
	"log/slog"

	"github.com/netops-toolkit/portcsv/pkg/collector/file"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
	"github.com/netops-toolkit/portcsv/pkg/target"
)

// FileSource reads captured CLI output from local files.
type FileSource struct {
	parser *file.Parser
}

// NewFileSource returns a source rejecting files larger than maxSize bytes.
func NewFileSource(maxSize int64) *FileSource {
	return &FileSource{parser: file.NewParser(file.WithMaxSize(maxSize))}
}

// Fetch reads the file behind t.
func (s *FileSource) Fetch(ctx context.Context, t target.Target) (*Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "cancelled", err)
	}
	if t.Kind != target.KindFile {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInternal, "file source cannot fetch target",
			map[string]any{"target": t.String()})
	}

	text, err := s.parser.ReadText(t.Path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeFetch, "failed to read input file", err,
			map[string]any{"path": t.Path})
	}
	slog.Debug("read input file", "path", t.Path, "bytes", len(text))
	return &Raw{Text: text, HostName: t.Name}, nil
}
