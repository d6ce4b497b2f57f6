package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/playground/internal/health"
	"github.com/wesleyorama2/playground/internal/output"
)

// healthOptions holds the flags of the health command
type healthOptions struct {
	watch    bool
	interval time.Duration
	count    int
}

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the API's health endpoint is reachable",
		Long: `Probe the API's health endpoint once and report connected or disconnected.
Only a 2xx status counts as connected.

With --watch the probe repeats every interval until interrupted (or until
--count probes have run) and a latency summary is printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			interval, _ := cmd.Flags().GetDuration("interval")
			count, _ := cmd.Flags().GetInt("count")

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if interval <= 0 {
				interval = s.config.HealthIntervalDuration()
			}
			opts := healthOptions{watch: watch, interval: interval, count: count}

			if !watch {
				return runHealthOnce(cmd.Context(), cmd.OutOrStdout(), s, opts)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHealthWatch(ctx, cmd.OutOrStdout(), s, opts)
		},
	}

	cmd.Flags().BoolP("watch", "w", false, "Keep probing until interrupted")
	cmd.Flags().Duration("interval", 0, fmt.Sprintf("Time between probes with --watch (default %s)", health.DefaultInterval))
	cmd.Flags().IntP("count", "n", 0, "Stop after this many probes with --watch (0 means no limit)")

	return cmd
}

// newChecker builds the health checker; a probe never outlives its interval.
func newChecker(s *settings, interval time.Duration) *health.Checker {
	return health.NewChecker(
		health.WithPath(s.config.HealthPath),
		health.WithTimeout(min(s.timeout, interval)),
		health.WithLogger(s.logger),
	)
}

func runHealthOnce(ctx context.Context, out io.Writer, s *settings, opts healthOptions) error {
	formatter := output.NewFormatter(false, s.noColor)

	probe := newChecker(s, opts.interval).Check(ctx, s.baseURL)
	fmt.Fprint(out, formatter.FormatProbe(s.baseURL, probe))

	if probe.State != health.StateConnected {
		return fmt.Errorf("API at %s is not healthy", s.baseURL)
	}
	return nil
}

func runHealthWatch(ctx context.Context, out io.Writer, s *settings, opts healthOptions) error {
	formatter := output.NewFormatter(false, s.noColor)
	stats := health.NewStats()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	probes := 0
	poller := health.NewPoller(newChecker(s, opts.interval), s.baseURL,
		health.WithInterval(opts.interval),
		health.WithStats(stats),
		health.OnProbe(func(p health.Probe) {
			fmt.Fprint(out, formatter.FormatProbe(s.baseURL, p))
			probes++
			if opts.count > 0 && probes >= opts.count {
				cancel()
			}
		}),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		poller.Run(ctx)
	}()
	<-done

	fmt.Fprintln(out)
	fmt.Fprint(out, formatter.FormatHealthSummary(stats.Summary()))
	return nil
}
