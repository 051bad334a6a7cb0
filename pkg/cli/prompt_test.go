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


package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netops-toolkit/portcsv/pkg/console"
)

func TestPrompter_LineCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer r.Close()
	pr := &prompter{in: bufio.NewReader(r), printer: console.New(io.Discard, console.WithNoColor(true))}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := pr.line(ctx, "Enter username: ")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, interrupted(ctx, err))

	// the abandoned read still delivers the next answer
	go func() {
		_, _ = io.WriteString(w, "admin\n")
	}()
	got, err := pr.line(context.Background(), "Enter username: ")
	require.NoError(t, err)
	assert.Equal(t, "admin", got)
}

func TestPrompter_LineEOF(t *testing.T) {
	pr := &prompter{in: bufio.NewReader(strings.NewReader("")), printer: console.New(io.Discard)}
	_, err := pr.line(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)

	pr = &prompter{in: bufio.NewReader(strings.NewReader("3")), printer: console.New(io.Discard)}
	got, err := pr.line(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, interrupted(ctx, io.EOF))
	cancel()
	assert.True(t, interrupted(ctx, context.Canceled))
	assert.False(t, interrupted(ctx, io.EOF))
}
