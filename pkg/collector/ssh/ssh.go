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

package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/time/rate"

	"github.com/netops-toolkit/portcsv/pkg/defaults"
	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

// Config holds the session settings shared by every device in a run.
type Config struct {
	Username string
	Password string
	// Port is used when the address carries none.
	Port int

	// Command is the single command whose output is captured.
	Command string
	// PagingCommand disables output paging. Empty skips it.
	PagingCommand string
	// LogoutCommand ends the CLI session.
	LogoutCommand string

	DialTimeout   time.Duration
	PromptTimeout time.Duration
	ReadTimeout   time.Duration
	LogoutTimeout time.Duration

	// KnownHostsFile enables host key verification. When empty any host
	// key is accepted.
	KnownHostsFile string
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = defaults.SSHPort
	}
	if c.Command == "" {
		c.Command = defaults.Command
	}
	if c.LogoutCommand == "" {
		c.LogoutCommand = defaults.LogoutCommand
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaults.SSHDialTimeout
	}
	if c.PromptTimeout <= 0 {
		c.PromptTimeout = defaults.SSHPromptTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaults.SSHReadTimeout
	}
	if c.LogoutTimeout <= 0 {
		c.LogoutTimeout = defaults.SSHLogoutTimeout
	}
	return c
}

// Capture is the result of one session.
type Capture struct {
	// Output is the command output without the echoed command and the
	// trailing prompt, with "\n" line endings.
	Output string
	// Prompt is the CLI prompt as first seen, e.g. "A:PE-1#".
	Prompt string
	// HostName is derived from Prompt.
	HostName string
}

// Option configures a Client.
type Option func(*Client)

// WithLimiter spaces out session setups across a run.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithDialer replaces the TCP dialer.
func WithDialer(d func(ctx context.Context, network, addr string) (net.Conn, error)) Option {
	return func(c *Client) {
		c.dial = d
	}
}

// Client opens one session per Run. It is safe for concurrent use.
type Client struct {
	cfg     Config
	limiter *rate.Limiter
	dial    func(ctx context.Context, network, addr string) (net.Conn, error)
}

// New returns a client for cfg; zero fields take package defaults.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg.withDefaults()}
	for _, o := range opts {
		o(c)
	}
	if c.dial == nil {
		d := &net.Dialer{Timeout: c.cfg.DialTimeout}
		c.dial = d.DialContext
	}
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Run executes the configured command on the device at address, which is
// a host or host:port.
func (c *Client) Run(ctx context.Context, address string) (*Capture, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.classify(err, address)
		}
	}

	client, err := c.connect(ctx, address)
	if err != nil {
		return nil, c.classify(err, address)
	}
	defer client.Close()

	// Tear the connection down if the run is cancelled mid-session.
	stop := context.AfterFunc(ctx, func() { client.Close() })
	defer stop()

	capture, err := c.session(ctx, client)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, c.classify(err, address)
	}
	capture.HostName = HostName(capture.Prompt, address)
	return capture, nil
}

func (c *Client) connect(ctx context.Context, address string) (*ssh.Client, error) {
	addr := hostPort(address, c.cfg.Port)

	hostKey, err := c.hostKeyCallback()
	if err != nil {
		return nil, err
	}
	config := &ssh.ClientConfig{
		User: c.cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.cfg.Password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = c.cfg.Password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: hostKey,
		Timeout:         c.cfg.DialTimeout,
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.DialTimeout)
	defer cancel()
	conn, err := c.dial(dialCtx, "tcp", addr)
	if err != nil {
		return nil, &dialError{err: err}
	}

	// The handshake shares the dial budget.
	if err := conn.SetDeadline(time.Now().Add(c.cfg.DialTimeout)); err != nil {
		conn.Close()
		return nil, err
	}
	sc, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		sc.Close()
		return nil, err
	}
	return ssh.NewClient(sc, chans, reqs), nil
}

func (c *Client) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if c.cfg.KnownHostsFile == "" {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // lab devices rarely have managed host keys
	}
	cb, err := knownhosts.New(c.cfg.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts: %w", err)
	}
	return cb, nil
}

func (c *Client) session(ctx context.Context, client *ssh.Client) (*Capture, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 38400,
		ssh.TTY_OP_OSPEED: 38400,
	}
	if err := session.RequestPty("vt100", 0, 512, modes); err != nil {
		return nil, fmt.Errorf("failed to request PTY: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdin: %w", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout: %w", err)
	}
	if err := session.Shell(); err != nil {
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}

	out := newExpecter(stdout)

	banner, err := out.waitFor(ctx, matchAnyPrompt, c.cfg.PromptTimeout)
	if err != nil {
		return nil, fmt.Errorf("waiting for prompt: %w", err)
	}
	prompt := lastLine(banner)
	slog.Debug("cli prompt detected", "prompt", prompt)
	atPrompt := matchPrompt(prompt)

	if c.cfg.PagingCommand != "" {
		if err := send(stdin, c.cfg.PagingCommand); err != nil {
			return nil, err
		}
		if _, err := out.waitFor(ctx, atPrompt, c.cfg.PromptTimeout); err != nil {
			return nil, fmt.Errorf("disabling paging: %w", err)
		}
	}

	if err := send(stdin, c.cfg.Command); err != nil {
		return nil, err
	}
	raw, err := out.waitFor(ctx, atPrompt, c.cfg.ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("reading %q output: %w", c.cfg.Command, err)
	}

	c.logout(stdin, session)

	return &Capture{
		Output: commandOutput(raw, c.cfg.Command, prompt),
		Prompt: prompt,
	}, nil
}

// logout asks the CLI to end the session and waits briefly for it to do so.
func (c *Client) logout(stdin io.Writer, session *ssh.Session) {
	if err := send(stdin, c.cfg.LogoutCommand); err != nil {
		slog.Debug("logout not sent", "error", err)
		return
	}
	done := make(chan error, 1)
	go func() { done <- session.Wait() }()
	select {
	case <-done:
	case <-time.After(c.cfg.LogoutTimeout):
		slog.Debug("session still open after logout")
	}
}

func send(w io.Writer, line string) error {
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return fmt.Errorf("failed to send %q: %w", line, err)
	}
	return nil
}

// hostPort appends port unless address already has one.
func hostPort(address string, port int) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(strings.Trim(address, "[]"), strconv.Itoa(port))
}

// HostName extracts the system name from a CLI prompt such as "A:PE-1#"
// or "*A:PE-1>config#". It returns fallback when the prompt has no ':'.
func HostName(prompt, fallback string) string {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return fallback
	}
	p = p[:len(p)-1]
	fields := strings.Split(p, ":")
	if len(fields) < 2 {
		return fallback
	}
	name, _, _ := strings.Cut(fields[1], ">")
	if name = strings.TrimSpace(name); name == "" {
		return fallback
	}
	return name
}

type dialError struct {
	err error
}

func (e *dialError) Error() string { return e.err.Error() }
func (e *dialError) Unwrap() error { return e.err }

// classify maps a session error onto the fetch error codes.
func (c *Client) classify(err error, address string) error {
	ctx := map[string]any{"address": address}

	var dErr *dialError
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.WrapWithContext(apperrors.ErrCodeInternal, "cancelled", err, ctx)
	case errors.As(err, &dErr), errors.Is(err, errReadTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.WrapWithContext(apperrors.ErrCodeUnreachable, "host unreachable", err, ctx)
	case strings.Contains(err.Error(), "unable to authenticate"):
		return apperrors.WrapWithContext(apperrors.ErrCodeUnauthorized,
			fmt.Sprintf("authentication failure: login '%s'", c.cfg.Username), err, ctx)
	default:
		return apperrors.WrapWithContext(apperrors.ErrCodeTransport, "SSH issue", err, ctx)
	}
}
