package http

import (
	"net/http"
	"net/url"
	"strings"
)

// Request is one playground request. The body is raw text and is never
// checked for valid JSON before sending.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    string
}

// NewRequest creates a new HTTP request
func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Headers: make(map[string]string),
	}
}

// WithHeader sets a header on the request
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithBody sets the raw request body
func (r *Request) WithBody(body string) *Request {
	r.Body = body
	return r
}

// URL returns the target address. The path is appended to the base URL
// verbatim, so a path may carry its own query string.
func (r *Request) URL(baseURL string) (*url.URL, error) {
	return url.Parse(baseURL + r.Path)
}

// Build constructs an http.Request from the Request. An empty body sends no
// body at all.
func (r *Request) Build(baseURL string) (*http.Request, error) {
	reqURL, err := r.URL(baseURL)
	if err != nil {
		return nil, err
	}

	var req *http.Request
	if r.Body != "" {
		req, err = http.NewRequest(r.Method, reqURL.String(), strings.NewReader(r.Body))
	} else {
		req, err = http.NewRequest(r.Method, reqURL.String(), nil)
	}
	if err != nil {
		return nil, err
	}

	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
