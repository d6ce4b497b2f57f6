// Package sender performs one request from the composer form and captures
// everything the response pane needs to render it.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/http"
)

// ErrNotJSON is wrapped by Result.Err when the response body does not parse as JSON.
var ErrNotJSON = errors.New("response is not valid JSON")

// Result is the outcome of a single send. Exactly one of two shapes is
// populated: a response (StatusCode, Body, Pretty, Data) or a failure (Err).
// A non-2xx status is a response, not a failure.
type Result struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Headers    nethttp.Header
	Elapsed    time.Duration
	Timing     http.TimingInfo
	Body       []byte
	Pretty     string
	Data       interface{}
	Err        error
	SentAt     time.Time
}

// OK reports whether the send produced a 2xx response.
func (r *Result) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Failed reports whether the send broke before a JSON response was read.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// ElapsedMillis returns the measured duration in whole milliseconds.
func (r *Result) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// Sender sends composer forms.
type Sender struct {
	timeout    time.Duration
	httpClient *nethttp.Client
	logger     *slog.Logger
}

// Option configures a Sender
type Option func(*Sender)

// WithTimeout bounds every send.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Sender) {
		s.timeout = timeout
	}
}

// WithHTTPClient routes sends through a specific *http.Client.
func WithHTTPClient(c *nethttp.Client) Option {
	return func(s *Sender) {
		s.httpClient = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// New creates a Sender
func New(opts ...Option) *Sender {
	s := &Sender{
		timeout: 30 * time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sender) client(baseURL string) *http.Client {
	opts := []http.ClientOption{http.WithBaseURL(baseURL)}
	if s.httpClient != nil {
		opts = append(opts, http.WithHTTPClient(s.httpClient))
	} else {
		opts = append(opts, http.WithTimeout(s.timeout))
	}
	return http.NewClient(opts...)
}

// Send performs the request described by form and never returns a nil Result.
func (s *Sender) Send(ctx context.Context, form composer.Form) *Result {
	result := &Result{
		Method: form.Method,
		URL:    form.URL(),
		SentAt: time.Now(),
	}

	req := http.NewRequest(form.Method, form.Path).
		WithHeader("Content-Type", "application/json")
	if form.HasBody() {
		req.WithBody(form.Body)
	}

	s.logger.Debug("sending request", "method", form.Method, "url", result.URL, "body", form.HasBody())

	// Elapsed covers the exchange and body read; decoding is not timed.
	start := time.Now()
	resp, err := s.client(form.BaseURL).Do(ctx, req)
	result.Elapsed = time.Since(start)
	if err != nil {
		s.logger.Debug("request failed", "url", result.URL, "error", err)
		result.Err = err
		return result
	}

	result.StatusCode = resp.StatusCode
	result.Status = resp.Status
	result.Headers = resp.Headers
	result.Timing = resp.Timing
	result.Body = resp.Body

	data, pretty, err := Decode(resp.Body)
	if err != nil {
		s.logger.Debug("response decode failed", "url", result.URL, "status", resp.StatusCode, "error", err)
		result.Err = err
		return result
	}
	result.Data = data
	result.Pretty = pretty

	s.logger.Debug("request completed", "url", result.URL, "status", resp.StatusCode, "elapsed", result.Elapsed)
	return result
}

// Decode parses body as JSON and returns the decoded value along with a
// two-space indented rendering that keeps the server's key order.
func Decode(body []byte) (interface{}, string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if dec.More() {
		return nil, "", fmt.Errorf("%w: unexpected data after top-level value", ErrNotJSON)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimSpace(body), "", "  "); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	return data, pretty.String(), nil
}
