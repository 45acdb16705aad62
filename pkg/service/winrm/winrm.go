// Package winrm manages WinRM connections to Windows hosts and runs
// PowerShell scripts over them. Authentication is NTLM, which is what
// domain environments actually allow; Basic auth is almost never enabled.
package winrm

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	gowinrm "github.com/masterzen/winrm"

	"github.com/shiftward/sweep/pkg/domain/model"
)

const (
	defaultTimeout = 120 * time.Second

	// WS-Management operation timeout and max envelope size
	operationTimeout = "PT120S"
	envelopeSize     = 153600
)

// Config holds the connection settings shared by all hosts in a run
type Config struct {
	Username   string // DOMAIN\user format
	Password   string
	Port       int // 0 selects 5985 or 5986 based on UseSSL
	UseSSL     bool
	SkipVerify bool
	Timeout    time.Duration
}

// Output is what a script produced on the remote host
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Manager dials WinRM clients on demand and caches one per host for the
// lifetime of a session. It implements interfaces.SessionManager.
type Manager struct {
	config  Config
	clients map[string]*gowinrm.Client
	mu      sync.Mutex
	open    bool
}

// New creates a Manager with the given connection settings
func New(config Config) *Manager {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	return &Manager{
		config:  config,
		clients: make(map[string]*gowinrm.Client),
	}
}

// Open validates the credentials and marks the session usable. Clients are
// dialed lazily per host on first Run. Opening an already-open manager is
// a no-op.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return nil
	}
	if m.config.Username == "" || m.config.Password == "" {
		return goerr.New("winrm credentials are not configured")
	}

	m.open = true
	ctxlog.From(ctx).Debug("winrm session opened",
		"username", m.config.Username,
		"ssl", m.config.UseSSL,
	)
	return nil
}

// Close drops all cached clients and marks the session unusable.
// Closing twice is harmless.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = false
	m.clients = make(map[string]*gowinrm.Client)
	return nil
}

// Run executes a PowerShell script on one host and returns its output.
// The script is passed via -EncodedCommand so quoting survives the
// cmd.exe and WinRM layers intact.
func (m *Manager) Run(ctx context.Context, host, script string) (*Output, error) {
	client, err := m.client(host)
	if err != nil {
		return nil, err
	}

	shell, err := client.CreateShell()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create shell", goerr.V("host", host))
	}
	defer shell.Close()

	cmd, err := shell.ExecuteWithContext(ctx, "powershell.exe",
		"-NoProfile", "-NonInteractive", "-EncodedCommand", encodePowerShell(script))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to execute script", goerr.V("host", host))
	}
	defer cmd.Close()

	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stdout, cmd.Stdout)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stderr, cmd.Stderr)
	}()

	cmd.Wait()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "script canceled", goerr.V("host", host))
	}

	out := &Output{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: cmd.ExitCode(),
	}
	ctxlog.From(ctx).Debug("winrm script finished",
		"host", host,
		"exitCode", out.ExitCode,
	)
	return out, nil
}

// client returns the cached client for host, dialing a new one if needed
func (m *Manager) client(host string) (*gowinrm.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, goerr.Wrap(model.ErrSessionClosed, "winrm session is not open", goerr.V("host", host))
	}
	if client, ok := m.clients[host]; ok {
		return client, nil
	}

	port := m.config.Port
	if port == 0 {
		if m.config.UseSSL {
			port = 5986
		} else {
			port = 5985
		}
	}

	endpoint := gowinrm.NewEndpoint(host, port, m.config.UseSSL, m.config.SkipVerify, nil, nil, nil, m.config.Timeout)
	params := gowinrm.NewParameters(operationTimeout, "en-US", envelopeSize)
	params.TransportDecorator = func() gowinrm.Transporter { return &gowinrm.ClientNTLM{} }

	client, err := gowinrm.NewClientWithParameters(endpoint, m.config.Username, m.config.Password, params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create winrm client", goerr.V("host", host), goerr.V("port", port))
	}

	m.clients[host] = client
	return client, nil
}

// ClientCount reports how many hosts have a cached client
func (m *Manager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
