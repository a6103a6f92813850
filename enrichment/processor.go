// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/medenrich/ai"
	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/quality"
	"github.com/poiesic/medenrich/storage"
)

// Processor runs the asynchronous enrichment pipeline: a bounded priority
// queue drained by a fixed pool of workers, each executing the per-task
// pipeline and merging results into the fragment store.
//
// A Processor is constructed once at startup and shared by reference.
// Lifecycle is explicit: Start launches the workers and monitor, Stop
// drains them. All structural state (queue, task table, counters) is
// guarded by a single mutex.
type Processor struct {
	repo      storage.FragmentRepository
	provider  ai.AIProvider
	evaluator *quality.Evaluator
	pipeline  *pipeline
	updater   *updater
	logger    *slog.Logger

	workers          int
	queueCapacity    int
	maxRetries       int
	historySize      int
	pollInterval     time.Duration
	monitorInterval  time.Duration
	stuckThreshold   time.Duration
	latencyWindow    int
	storeAttempts    int
	storeBaseDelay   time.Duration
	maxSummaryLength int
	maxKeywords      int

	mu            sync.Mutex
	queue         *taskQueue
	tasks         map[uuid.UUID]*core.Task
	history       *historyRing
	latency       *latencyWindow
	counters      counters
	activeWorkers int
	started       bool
	stopped       bool

	pool        *ants.Pool
	stopCh      chan struct{}
	workersDone sync.WaitGroup
	monitorDone chan struct{}
}

type counters struct {
	submitted uint64
	completed uint64
	failed    uint64
	cancelled uint64
	retried   uint64
	degraded  uint64
}

// Option configures a Processor.
type Option func(*Processor) error

// WithWorkers sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			n = 1
		}
		p.workers = n
		return nil
	}
}

// WithQueueCapacity sets the maximum number of pending tasks.
// Submit fails with ErrQueueFull beyond this. Default is 256.
func WithQueueCapacity(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			n = 1
		}
		p.queueCapacity = n
		return nil
	}
}

// WithMaxRetries sets the default retry budget for submitted tasks.
// A task failing transiently is re-queued until the budget is spent,
// so it is attempted at most maxRetries+1 times. Default is 3.
func WithMaxRetries(n int) Option {
	return func(p *Processor) error {
		if n < 0 {
			n = 0
		}
		p.maxRetries = n
		return nil
	}
}

// WithHistorySize sets how many finished tasks are retained for Status
// and Result queries before oldest-first eviction. Default is 256.
func WithHistorySize(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			n = 1
		}
		p.historySize = n
		return nil
	}
}

// WithMonitorInterval sets how often the monitor logs a stats snapshot
// and scans for stuck tasks. Default is 30s.
func WithMonitorInterval(d time.Duration) Option {
	return func(p *Processor) error {
		if d <= 0 {
			return fmt.Errorf("monitor interval must be positive, got %v", d)
		}
		p.monitorInterval = d
		return nil
	}
}

// WithStuckThreshold sets how long a task may stay in PROCESSING before
// the monitor flags it. Default is 5m.
func WithStuckThreshold(d time.Duration) Option {
	return func(p *Processor) error {
		if d <= 0 {
			return fmt.Errorf("stuck threshold must be positive, got %v", d)
		}
		p.stuckThreshold = d
		return nil
	}
}

// WithLatencyWindow sets how many recent completions feed the rolling
// average latency. Default is 50.
func WithLatencyWindow(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			n = 1
		}
		p.latencyWindow = n
		return nil
	}
}

// WithStoreRetry configures the store updater's independent retry policy.
// Defaults are 3 attempts with a 500ms base delay.
func WithStoreRetry(attempts int, baseDelay time.Duration) Option {
	return func(p *Processor) error {
		if attempts < 1 {
			attempts = 1
		}
		if baseDelay <= 0 {
			baseDelay = 100 * time.Millisecond
		}
		p.storeAttempts = attempts
		p.storeBaseDelay = baseDelay
		return nil
	}
}

// WithSummaryLength sets the maximum summary length in characters, used
// by both the service call and the truncation fallback. Default is 200.
func WithSummaryLength(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			return fmt.Errorf("summary length must be positive, got %d", n)
		}
		p.maxSummaryLength = n
		return nil
	}
}

// WithMaxKeywords caps the fallback keyword extractor's output. Default
// is 10.
func WithMaxKeywords(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			return fmt.Errorf("max keywords must be positive, got %d", n)
		}
		p.maxKeywords = n
		return nil
	}
}

// WithPollInterval sets how long an idle worker sleeps before checking
// the queue again. Default is 50ms. Mostly useful in tests.
func WithPollInterval(d time.Duration) Option {
	return func(p *Processor) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", d)
		}
		p.pollInterval = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a new enrichment processor. The processor does not
// run until Start is called.
func NewProcessor(
	repo storage.FragmentRepository,
	provider ai.AIProvider,
	evaluator *quality.Evaluator,
	opts ...Option,
) (*Processor, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if evaluator == nil {
		return nil, ErrEvaluatorRequired
	}

	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	p := &Processor{
		repo:             repo,
		provider:         provider,
		evaluator:        evaluator,
		logger:           slog.Default().With("component", "enrichment"),
		workers:          workers,
		queueCapacity:    256,
		maxRetries:       3,
		historySize:      256,
		pollInterval:     50 * time.Millisecond,
		monitorInterval:  30 * time.Second,
		stuckThreshold:   5 * time.Minute,
		latencyWindow:    50,
		storeAttempts:    3,
		storeBaseDelay:   500 * time.Millisecond,
		maxSummaryLength: 200,
		maxKeywords:      10,
		queue:            newTaskQueue(),
		tasks:            make(map[uuid.UUID]*core.Task),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.history = newHistoryRing(p.historySize)
	p.latency = newLatencyWindow(p.latencyWindow)
	p.pipeline = newPipeline(provider.Summarizer(), provider.KeywordExtractor(),
		evaluator, p.maxSummaryLength, p.maxKeywords, p.logger)
	p.updater = newUpdater(repo, p.storeAttempts, p.storeBaseDelay, p.logger)

	return p, nil
}

// Start launches the worker pool and monitor loop.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}

	pool, err := ants.NewPool(p.workers)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.pool = pool
	p.stopCh = make(chan struct{})
	p.monitorDone = make(chan struct{})
	p.started = true
	p.mu.Unlock()

	for i := 0; i < p.workers; i++ {
		p.workersDone.Add(1)
		if err := pool.Submit(p.workerLoop); err != nil {
			p.workersDone.Done()
			close(p.stopCh)
			pool.Release()
			p.mu.Lock()
			p.started = false
			p.stopped = true
			p.mu.Unlock()
			return err
		}
	}

	go p.monitorLoop()

	p.logger.Info("enrichment processor started",
		"workers", p.workers, "queueCapacity", p.queueCapacity)
	return nil
}

// Stop shuts the processor down gracefully: intake closes immediately,
// in-flight tasks run until ctx expires, then stragglers are cancelled
// and the pool is released. Tasks still pending are cancelled; they were
// never claimed and will not run.
func (p *Processor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return ErrNotStarted
	}
	p.stopped = true
	close(p.stopCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workersDone.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warn("shutdown deadline reached with tasks still in flight")
	}
	<-p.monitorDone

	// Cancel everything that never ran, and force-cancel stragglers that
	// blew the deadline. A straggler's eventual finish is a guarded no-op.
	var terminal []*core.Task
	p.mu.Lock()
	for {
		task := p.queue.pop()
		if task == nil {
			break
		}
		task.Status = core.TaskCancelled
		task.CompletedAt = time.Now().UTC()
		p.counters.cancelled++
		p.moveToHistory(task)
		terminal = append(terminal, task)
	}
	for _, task := range p.tasks {
		if task.Status == core.TaskProcessing {
			p.logger.Warn("cancelling in-flight task at shutdown",
				"task", task.Id, "fragment", task.FragmentID)
			task.Status = core.TaskCancelled
			task.CompletedAt = time.Now().UTC()
			p.counters.cancelled++
			p.activeWorkers--
			p.moveToHistory(task)
			terminal = append(terminal, task)
		}
	}
	p.mu.Unlock()

	for _, task := range terminal {
		if task.Callback != nil {
			task.Callback(task)
		}
	}

	p.pool.Release()
	p.logger.Info("enrichment processor stopped")
	return nil
}

// SubmitOptions holds optional per-task parameters.
type SubmitOptions struct {
	MaxRetries int              // retry budget override; 0 uses the processor default
	Callback   func(*core.Task) // invoked once when the task reaches a terminal state
}

// Submit enqueues an enrichment task and returns its ID. Fails fast with
// ErrQueueFull when the queue is at capacity; never blocks.
func (p *Processor) Submit(ctx context.Context, fragmentID, text string, priority core.Priority, opts *SubmitOptions) (uuid.UUID, error) {
	if fragmentID == "" {
		return uuid.Nil, core.ErrEmptyFragmentID
	}
	if strings.TrimSpace(text) == "" {
		return uuid.Nil, core.ErrEmptyContent
	}
	if err := core.ValidatePriority(priority); err != nil {
		return uuid.Nil, err
	}

	maxRetries := p.maxRetries
	var callback func(*core.Task)
	if opts != nil {
		if opts.MaxRetries > 0 {
			maxRetries = opts.MaxRetries
		}
		callback = opts.Callback
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return uuid.Nil, ErrNotStarted
	}
	if p.stopped {
		return uuid.Nil, ErrStopped
	}
	if p.queue.len() >= p.queueCapacity {
		return uuid.Nil, ErrQueueFull
	}

	task := &core.Task{
		Id:         uuid.New(),
		FragmentID: fragmentID,
		Text:       text,
		Priority:   priority,
		Status:     core.TaskPending,
		CreatedAt:  time.Now().UTC(),
		MaxRetries: maxRetries,
		Callback:   callback,
	}
	p.tasks[task.Id] = task
	p.queue.push(task)
	p.counters.submitted++

	return task.Id, nil
}

// Cancel removes a pending task from the queue. A task already claimed by
// a worker runs to completion; Cancel returns false for it.
func (p *Processor) Cancel(id uuid.UUID) bool {
	p.mu.Lock()
	task, ok := p.tasks[id]
	if !ok || task.Status != core.TaskPending {
		p.mu.Unlock()
		return false
	}
	p.queue.remove(id)
	task.Status = core.TaskCancelled
	task.CompletedAt = time.Now().UTC()
	p.counters.cancelled++
	p.moveToHistory(task)
	callback := task.Callback
	p.mu.Unlock()

	if callback != nil {
		callback(task)
	}
	return true
}

// Status returns the current status of a known task.
func (p *Processor) Status(id uuid.UUID) (core.TaskStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	task, ok := p.tasks[id]
	if !ok {
		return 0, ErrTaskNotFound
	}
	return task.Status, nil
}

// Result returns the enrichment result of a completed task. Returns
// ErrResultNotReady while the task is still in flight.
func (p *Processor) Result(id uuid.UUID) (*core.EnrichmentResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	task, ok := p.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	if task.Result == nil {
		return nil, ErrResultNotReady
	}
	return task.Result, nil
}

// Stats returns a snapshot of processor counters.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Submitted:      p.counters.submitted,
		Completed:      p.counters.completed,
		Failed:         p.counters.failed,
		Cancelled:      p.counters.cancelled,
		Retried:        p.counters.retried,
		Degraded:       p.counters.degraded,
		ActiveWorkers:  p.activeWorkers,
		QueueDepth:     p.queue.len(),
		AverageLatency: p.latency.average(),
	}
}

// ResetStats zeroes all counters and the latency window. Operator action
// only; counters are otherwise monotonic for the process lifetime.
func (p *Processor) ResetStats() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.counters = counters{}
	p.latency.reset()
}

// Health reports pool liveness and the AI provider's own health probe.
func (p *Processor) Health(ctx context.Context) error {
	p.mu.Lock()
	running := p.started && !p.stopped
	p.mu.Unlock()

	if !running {
		return ErrNotStarted
	}
	return p.provider.Healthy(ctx)
}

// workerLoop claims and runs tasks until the processor stops. A worker
// finding the queue empty sleeps briefly and loops; it never exits on
// transient emptiness.
func (p *Processor) workerLoop() {
	defer p.workersDone.Done()

	for {
		task := p.claim()
		if task == nil {
			select {
			case <-p.stopCh:
				return
			case <-time.After(p.pollInterval):
			}
			continue
		}
		p.runTask(task)
	}
}

// claim pops the highest-priority pending task and marks it PROCESSING.
// Returns nil when the queue is empty or intake has closed.
func (p *Processor) claim() *core.Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil
	}
	task := p.queue.pop()
	if task == nil {
		return nil
	}
	task.Status = core.TaskProcessing
	task.StartedAt = time.Now().UTC()
	p.activeWorkers++
	return task
}

// runTask executes the pipeline for one claimed task and routes the
// outcome. Panics are contained here; nothing escapes to kill a worker.
func (p *Processor) runTask(task *core.Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in enrichment pipeline",
				"task", task.Id, "fragment", task.FragmentID, "panic", r)
			p.finishFailure(task, fmt.Errorf("pipeline panic: %v", r))
		}
	}()

	result, err := p.pipeline.run(context.Background(), task)
	if err != nil {
		p.routeTransient(task, err)
		return
	}

	// Store failures are isolated from pipeline failures: the updater
	// retries internally, and the computed result is kept either way.
	if err := p.updater.apply(context.Background(), result); err != nil {
		p.logger.Error("store update failed after retries",
			"task", task.Id, "fragment", task.FragmentID, "err", err)
	}

	p.finishSuccess(task, result)
}

// routeTransient re-queues a transiently failed task at the same priority
// if its retry budget allows, otherwise marks it FAILED.
func (p *Processor) routeTransient(task *core.Task, err error) {
	p.mu.Lock()
	if task.Status != core.TaskProcessing {
		p.mu.Unlock()
		return
	}

	if task.RetryCount < task.MaxRetries {
		task.RetryCount++
		task.Status = core.TaskPending
		task.StartedAt = time.Time{}
		p.activeWorkers--
		p.counters.retried++
		p.queue.push(task)
		p.mu.Unlock()

		p.logger.Debug("task re-queued after transient error",
			"task", task.Id, "fragment", task.FragmentID,
			"retryCount", task.RetryCount, "err", err)
		return
	}
	p.mu.Unlock()

	p.finishFailure(task, err)
}

func (p *Processor) finishSuccess(task *core.Task, result *core.EnrichmentResult) {
	p.mu.Lock()
	if task.Status != core.TaskProcessing {
		p.mu.Unlock()
		return
	}

	task.Status = core.TaskCompleted
	task.Result = result
	task.CompletedAt = time.Now().UTC()
	p.activeWorkers--
	p.counters.completed++
	if result.SummaryMethod == core.MethodFallback || result.KeywordMethod == core.MethodFallback {
		p.counters.degraded++
	}
	p.latency.add(result.ProcessingTime)
	p.moveToHistory(task)
	callback := task.Callback
	p.mu.Unlock()

	if callback != nil {
		callback(task)
	}
}

func (p *Processor) finishFailure(task *core.Task, err error) {
	p.mu.Lock()
	if task.Status != core.TaskProcessing {
		p.mu.Unlock()
		return
	}

	task.Status = core.TaskFailed
	task.Err = err.Error()
	task.CompletedAt = time.Now().UTC()
	p.activeWorkers--
	p.counters.failed++
	p.moveToHistory(task)
	callback := task.Callback
	p.mu.Unlock()

	p.logger.Error("task failed",
		"task", task.Id, "fragment", task.FragmentID,
		"retryCount", task.RetryCount, "err", err)

	if callback != nil {
		callback(task)
	}
}

// moveToHistory records a terminal task and evicts the oldest entry once
// the ring is full. Must be called with the mutex held.
func (p *Processor) moveToHistory(task *core.Task) {
	if evicted, ok := p.history.add(task.Id); ok {
		delete(p.tasks, evicted)
	}
}
