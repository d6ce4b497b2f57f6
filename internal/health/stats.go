package health

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	histogramMin     = 1
	histogramMax     = int64(time.Minute / time.Microsecond)
	histogramSigFigs = 3
)

// Stats accumulates probe outcomes. Latencies are kept in microseconds.
type Stats struct {
	mu           sync.Mutex
	latency      *hdrhistogram.Histogram
	connected    int64
	disconnected int64
	last         Probe
}

// Summary is a point-in-time view of Stats.
type Summary struct {
	Probes       int64
	Connected    int64
	Disconnected int64
	Min          time.Duration
	P50          time.Duration
	P95          time.Duration
	Max          time.Duration
	Last         Probe
}

// NewStats creates an empty Stats
func NewStats() *Stats {
	return &Stats{
		latency: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds a probe. Latency is only recorded for probes that got a response.
func (s *Stats) Record(p Probe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = p
	if p.State == StateConnected {
		s.connected++
	} else {
		s.disconnected++
	}

	if p.StatusCode == 0 {
		return
	}
	us := p.Latency.Microseconds()
	if us < histogramMin {
		us = histogramMin
	}
	if us > histogramMax {
		us = histogramMax
	}
	_ = s.latency.RecordValue(us)
}

// Summary returns the current totals and latency percentiles.
func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		Probes:       s.connected + s.disconnected,
		Connected:    s.connected,
		Disconnected: s.disconnected,
		Last:         s.last,
	}
	if s.latency.TotalCount() == 0 {
		return sum
	}

	sum.Min = time.Duration(s.latency.Min()) * time.Microsecond
	sum.P50 = time.Duration(s.latency.ValueAtQuantile(50)) * time.Microsecond
	sum.P95 = time.Duration(s.latency.ValueAtQuantile(95)) * time.Microsecond
	sum.Max = time.Duration(s.latency.Max()) * time.Microsecond
	return sum
}
