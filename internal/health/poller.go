package health

import (
	"context"
	"time"
)

// Poller runs a Checker against a fixed base URL on an interval.
type Poller struct {
	checker  *Checker
	baseURL  string
	interval time.Duration
	stats    *Stats
	onProbe  func(Probe)
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithInterval sets the time between probes.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithStats records every probe into stats.
func WithStats(stats *Stats) PollerOption {
	return func(p *Poller) {
		p.stats = stats
	}
}

// OnProbe registers a callback invoked after every probe.
func OnProbe(fn func(Probe)) PollerOption {
	return func(p *Poller) {
		p.onProbe = fn
	}
}

// NewPoller creates a Poller
func NewPoller(checker *Checker, baseURL string, opts ...PollerOption) *Poller {
	p := &Poller{
		checker:  checker,
		baseURL:  baseURL,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run probes immediately and then once per interval until ctx is done.
// Each tick is independent: there is no retry and no backoff.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	probe := p.checker.Check(ctx, p.baseURL)
	if ctx.Err() != nil {
		return
	}
	if p.stats != nil {
		p.stats.Record(probe)
	}
	if p.onProbe != nil {
		p.onProbe(probe)
	}
}
