package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/health"
	"github.com/wesleyorama2/playground/internal/sender"
)

// Formatter is responsible for formatting requests and results in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatRequest formats the request a form will send
func (f *Formatter) FormatRequest(form composer.Form) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n", f.scheme.Method.Sprint(form.Method), f.scheme.URL.Sprint(form.URL())))

	if form.HasBody() {
		buf.WriteString("  Body:\n")
		buf.WriteString(indent(strings.TrimRight(form.Body, "\n"), "    "))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResult formats a send result for display. Responses show the status,
// the elapsed time and the highlighted body; failures show only the message.
func (f *Formatter) FormatResult(r *sender.Result) string {
	var buf strings.Builder

	if r.Failed() {
		buf.WriteString(fmt.Sprintf("◀ %s\n", f.scheme.StatusError.Sprint("Error")))
		buf.WriteString(indent(f.scheme.Error.Sprint(r.Err.Error()), "  "))
		buf.WriteString("\n")
		return buf.String()
	}

	// every non-2xx status, redirects included, is styled as an error
	statusColor := f.scheme.StatusError
	if r.OK() {
		statusColor = f.scheme.StatusOK
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s %s\n",
		statusColor.Sprint(statusText(r)),
		f.scheme.Muted.Sprintf("%dms", r.ElapsedMillis())))

	if f.Verbose && len(r.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(r.Headers))
		for key := range r.Headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, value := range r.Headers[key] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), value))
			}
		}
	}

	if f.Verbose {
		t := r.Timing
		buf.WriteString(fmt.Sprintf("  Timing: dns %s, connect %s, tls %s, ttfb %s, transfer %s\n",
			millis(t.DNSLookupTime), millis(t.TCPConnectTime), millis(t.TLSHandshakeTime),
			millis(t.TimeToFirstByte), millis(t.ContentTransferTime)))
	}

	buf.WriteString("  Body:\n")
	buf.WriteString(indent(Highlight(r.Pretty, f.scheme), "  "))
	buf.WriteString("\n")

	return buf.String()
}

// FormatProbe formats a single health probe as one status line
func (f *Formatter) FormatProbe(baseURL string, p health.Probe) string {
	connected := p.State == health.StateConnected
	line := fmt.Sprintf("%s %s %s", StatusDot(connected, f.NoColor), p.State, baseURL)
	if p.StatusCode != 0 {
		line += fmt.Sprintf(" (%d, %dms)", p.StatusCode, p.Latency.Milliseconds())
	}
	return line + "\n"
}

// FormatHealthSummary formats accumulated probe statistics
func (f *Formatter) FormatHealthSummary(s health.Summary) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%d probes: %s %d up, %s %d down\n",
		s.Probes,
		SuccessIcon(f.NoColor), s.Connected,
		ErrorIcon(f.NoColor), s.Disconnected))
	if s.Max > 0 {
		buf.WriteString(fmt.Sprintf("  Latency: min %dms, p50 %dms, p95 %dms, max %dms\n",
			s.Min.Milliseconds(), s.P50.Milliseconds(), s.P95.Milliseconds(), s.Max.Milliseconds()))
	}
	return buf.String()
}

func statusText(r *sender.Result) string {
	if r.Status != "" {
		return r.Status
	}
	return strconv.Itoa(r.StatusCode)
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

// indent prefixes every line of s
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
