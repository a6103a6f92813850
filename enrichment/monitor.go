package enrichment

import (
	"time"

	"github.com/poiesic/medenrich/core"
)

// monitorLoop periodically logs a stats snapshot and flags tasks that
// have been processing longer than the stuck threshold.
func (p *Processor) monitorLoop() {
	defer close(p.monitorDone)

	ticker := time.NewTicker(p.monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.report()
		}
	}
}

func (p *Processor) report() {
	stats := p.Stats()
	p.logger.Info("enrichment stats",
		"queueDepth", stats.QueueDepth,
		"activeWorkers", stats.ActiveWorkers,
		"submitted", stats.Submitted,
		"completed", stats.Completed,
		"failed", stats.Failed,
		"cancelled", stats.Cancelled,
		"retried", stats.Retried,
		"degraded", stats.Degraded,
		"avgLatency", stats.AverageLatency)

	now := time.Now().UTC()

	type stuck struct {
		id       string
		fragment string
		elapsed  time.Duration
	}
	var flagged []stuck

	p.mu.Lock()
	for _, task := range p.tasks {
		if task.Status == core.TaskProcessing && now.Sub(task.StartedAt) > p.stuckThreshold {
			flagged = append(flagged, stuck{
				id:       task.Id.String(),
				fragment: task.FragmentID,
				elapsed:  now.Sub(task.StartedAt),
			})
		}
	}
	p.mu.Unlock()

	for _, s := range flagged {
		p.logger.Warn("task processing longer than stuck threshold",
			"task", s.id, "fragment", s.fragment, "elapsed", s.elapsed)
	}
}
