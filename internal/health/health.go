// Package health probes the target API's health endpoint and tracks whether
// the playground is connected to it.
package health

import (
	"context"
	"io"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/wesleyorama2/playground/internal/http"
)

const (
	// DefaultPath is probed under the base URL.
	DefaultPath = "/health"
	// DefaultInterval is the time between probes.
	DefaultInterval = 5 * time.Second
)

// State is the connection indicator's state.
type State int

const (
	StateUnknown State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Probe is the outcome of one health check.
type Probe struct {
	State      State
	StatusCode int
	Latency    time.Duration
	At         time.Time
}

// Checker runs single health probes.
type Checker struct {
	path       string
	timeout    time.Duration
	httpClient *nethttp.Client
	logger     *slog.Logger
}

// CheckerOption configures a Checker
type CheckerOption func(*Checker)

// WithPath overrides the probed path.
func WithPath(path string) CheckerOption {
	return func(c *Checker) {
		c.path = path
	}
}

// WithTimeout bounds each probe.
func WithTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		c.timeout = timeout
	}
}

// WithHTTPClient routes probes through a specific *http.Client.
func WithHTTPClient(client *nethttp.Client) CheckerOption {
	return func(c *Checker) {
		c.httpClient = client
	}
}

// WithLogger sets the logger that receives swallowed probe failures.
func WithLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		path:    DefaultPath,
		timeout: DefaultInterval,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check probes baseURL once. Only a 2xx status counts as connected; any
// other status or a transport failure counts as disconnected. Failures are
// logged at debug level and never returned.
func (c *Checker) Check(ctx context.Context, baseURL string) Probe {
	opts := []http.ClientOption{http.WithBaseURL(baseURL)}
	if c.httpClient != nil {
		opts = append(opts, http.WithHTTPClient(c.httpClient))
	} else {
		opts = append(opts, http.WithTimeout(c.timeout))
	}
	client := http.NewClient(opts...)

	probe := Probe{State: StateDisconnected, At: time.Now()}

	resp, err := client.Do(ctx, http.NewRequest("GET", c.path))
	probe.Latency = time.Since(probe.At)
	if err != nil {
		c.logger.Debug("health check failed", "url", baseURL+c.path, "error", err)
		return probe
	}

	probe.StatusCode = resp.StatusCode
	if resp.IsSuccess() {
		probe.State = StateConnected
	} else {
		c.logger.Debug("health check returned non-success status", "url", baseURL+c.path, "status", resp.StatusCode)
	}
	return probe
}
