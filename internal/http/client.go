// Package http sends single playground requests and records how long each
// connection phase took.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// Client sends requests against one API base URL.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options.
//
// Example:
//
//	client := http.NewClient(
//	    http.WithBaseURL("http://localhost:8000"),
//	    http.WithTimeout(10*time.Second),
//	)
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithBaseURL sets the base URL that every request path is appended to.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout bounds the whole exchange, body read included.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Do sends req and reads the whole body. A non-2xx status is returned as a
// Response; only transport and read failures are errors.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.Build(c.baseURL)
	if err != nil {
		return nil, err
	}

	timer := newPhaseTimer()
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(ctx, timer.trace()))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	transferStart := time.Now()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	timer.timing.ContentTransferTime = time.Since(transferStart)
	timer.timing.TotalTime = time.Since(timer.timing.StartTime)

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       body,
		Timing:     timer.timing,
	}, nil
}

// phaseTimer fills a TimingInfo from httptrace callbacks. Phases that did not
// happen, such as DNS for an IP literal or TLS for plain http, stay zero.
type phaseTimer struct {
	timing       TimingInfo
	dnsStart     time.Time
	connectStart time.Time
	tlsStart     time.Time
	lastPhaseEnd time.Time
}

func newPhaseTimer() *phaseTimer {
	now := time.Now()
	return &phaseTimer{
		timing:       TimingInfo{StartTime: now},
		lastPhaseEnd: now,
	}
}

func (p *phaseTimer) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			p.dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			p.lastPhaseEnd = time.Now()
			p.timing.DNSLookupTime = p.lastPhaseEnd.Sub(p.dnsStart)
		},
		ConnectStart: func(network, addr string) {
			p.connectStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			if err != nil || p.connectStart.IsZero() {
				return
			}
			p.lastPhaseEnd = time.Now()
			p.timing.TCPConnectTime = p.lastPhaseEnd.Sub(p.connectStart)
		},
		TLSHandshakeStart: func() {
			p.tlsStart = time.Now()
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err != nil || p.tlsStart.IsZero() {
				return
			}
			p.lastPhaseEnd = time.Now()
			p.timing.TLSHandshakeTime = p.lastPhaseEnd.Sub(p.tlsStart)
		},
		GotFirstResponseByte: func() {
			p.timing.TimeToFirstByte = time.Since(p.lastPhaseEnd)
		},
	}
}
