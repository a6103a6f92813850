package enrichment

import "time"

// Stats is a point-in-time snapshot of processor activity. Counters are
// monotonic for the process lifetime unless ResetStats is called.
type Stats struct {
	Submitted uint64
	Completed uint64
	Failed    uint64
	Cancelled uint64
	Retried   uint64

	// Degraded counts completed tasks where at least one branch used a
	// local fallback instead of the external service.
	Degraded uint64

	ActiveWorkers int
	QueueDepth    int

	// AverageLatency is the rolling mean over the most recent completions.
	AverageLatency time.Duration
}

// latencyWindow keeps the last N completion latencies as a ring.
// Not safe for concurrent use; callers hold the processor mutex.
type latencyWindow struct {
	samples []time.Duration
	next    int
	count   int
}

func newLatencyWindow(size int) *latencyWindow {
	if size < 1 {
		size = 1
	}
	return &latencyWindow{samples: make([]time.Duration, size)}
}

func (w *latencyWindow) add(d time.Duration) {
	w.samples[w.next] = d
	w.next = (w.next + 1) % len(w.samples)
	if w.count < len(w.samples) {
		w.count++
	}
}

func (w *latencyWindow) average() time.Duration {
	if w.count == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < w.count; i++ {
		total += w.samples[i]
	}
	return total / time.Duration(w.count)
}

func (w *latencyWindow) reset() {
	w.next = 0
	w.count = 0
}
