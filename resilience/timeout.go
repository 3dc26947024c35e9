package resilience

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tech-psycho95/ai-council/core"
)

// TimeoutError reports an execute_with_timeout deadline breach, carrying the
// duration that was enforced.
type TimeoutError struct {
	Op       string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Op, e.Duration)
}

// Is lets errors.Is(err, core.ErrModelTimeout) succeed for a *TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == core.ErrModelTimeout
}

// adaptiveStat tracks a rolling window of successful call durations for one
// operation, used to compute a p95-based next timeout.
type adaptiveStat struct {
	mu       sync.Mutex
	samples  []time.Duration
	maxSamples int
}

func newAdaptiveStat(maxSamples int) *adaptiveStat {
	return &adaptiveStat{maxSamples: maxSamples}
}

func (s *adaptiveStat) record(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, d)
	if len(s.samples) > s.maxSamples {
		s.samples = s.samples[len(s.samples)-s.maxSamples:]
	}
}

// p95 returns the 95th percentile of recorded samples, or zero if empty.
func (s *adaptiveStat) p95() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), s.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)) * 0.95)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// TimeoutHandler enforces a hard per-call deadline and, via NextTimeout,
// grows that deadline toward 1.5x the operation's observed p95 latency.
type TimeoutHandler struct {
	logger      core.Logger
	minTimeout  time.Duration
	mu          sync.Mutex
	stats       map[string]*adaptiveStat
}

// NewTimeoutHandler builds a handler with a 1-second floor on adaptive
// timeouts and a 200-sample rolling window per operation.
func NewTimeoutHandler(logger core.Logger) *TimeoutHandler {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &TimeoutHandler{
		logger:     logger,
		minTimeout: time.Second,
		stats:      make(map[string]*adaptiveStat),
	}
}

func (h *TimeoutHandler) statFor(opName string) *adaptiveStat {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.stats[opName]
	if !ok {
		s = newAdaptiveStat(200)
		h.stats[opName] = s
	}
	return s
}

// NextTimeout returns max(minTimeout, 1.5 * p95) for opName, or defaultTimeout
// when no samples have been recorded yet (bootstrap).
func (h *TimeoutHandler) NextTimeout(opName string, defaultTimeout time.Duration) time.Duration {
	p95 := h.statFor(opName).p95()
	if p95 == 0 {
		if defaultTimeout > h.minTimeout {
			return defaultTimeout
		}
		return h.minTimeout
	}
	adaptive := time.Duration(float64(p95) * 1.5)
	if adaptive < h.minTimeout {
		return h.minTimeout
	}
	return adaptive
}

// ExecuteWithTimeout runs fn with a hard deadline. On success it feeds the
// observed duration back into the per-operation adaptive stat. On deadline
// breach it cancels fn's context and returns a *TimeoutError; if fn's result
// arrives after the deadline it is discarded.
func (h *TimeoutHandler) ExecuteWithTimeout(ctx context.Context, opName string, timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		if err == nil {
			h.statFor(opName).record(time.Since(start))
		}
		return err
	case <-ctx.Done():
		h.logger.WarnWithContext(ctx, "operation timed out", map[string]interface{}{
			"op":      opName,
			"timeout": timeout.String(),
		})
		return &TimeoutError{Op: opName, Duration: timeout}
	}
}
