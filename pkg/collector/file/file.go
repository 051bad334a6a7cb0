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

package file

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser reads text files with customizable settings.
type Parser struct {
	delimiter    string
	maxSize      int64
	skipComments bool
}

// WithDelimiter sets the delimiter used by GetLines to split entries.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of the file to be read.
// Default is 1MB.
func WithMaxSize(size int64) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether GetLines skips lines starting with "#".
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// NewParser creates a new file parser with the provided options.
// Default settings: newline delimiter ("\n"), 1MB max file size.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      1 << 20, // 1MB default
		skipComments: true,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadText reads the whole file at path and returns it as UTF-8 text.
// An error is returned if the file cannot be read, exceeds the maximum
// size, or cannot be decoded.
func (p *Parser) ReadText(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory", path)
	}
	if info.Size() > p.maxSize {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}

	text, err := decode(b)
	if err != nil {
		return "", fmt.Errorf("content of file %q: %w", path, err)
	}
	return text, nil
}

func decode(b []byte) (string, error) {
	if bytes.HasPrefix(b, bomUTF16LE) || bytes.HasPrefix(b, bomUTF16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, b)
		if err != nil {
			return "", fmt.Errorf("invalid UTF-16: %w", err)
		}
		slog.Debug("decoded UTF-16 input", "bytes", len(b))
		return string(out), nil
	}

	b = bytes.TrimPrefix(b, bomUTF8)
	if !utf8.Valid(b) {
		return "", fmt.Errorf("not valid UTF-8")
	}
	return string(b), nil
}

// GetLines reads the file at the given path and splits its content into lines
// based on the configured delimiter. It returns the trimmed, non-empty lines.
func (p *Parser) GetLines(path string) ([]string, error) {
	text, err := p.ReadText(path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(text, p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		cleanPart := strings.TrimSpace(part)
		if cleanPart == "" {
			continue
		}

		if p.skipComments && strings.HasPrefix(cleanPart, "#") {
			continue
		}

		result = append(result, cleanPart)
	}

	return result, nil
}
