// Package scheduler runs the periodic delivery tasks: the queue tick, the
// retry tick and the retention purge.
//
// Each task is guarded by its own busy flag. A tick that fires while the
// previous run of the same task is still going is skipped, not queued.
// Different tasks may run at the same time.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"webhook-gateway/config"
	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/metrics"
	"webhook-gateway/pkg/apperror"
	"webhook-gateway/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Task names accepted by Trigger.
const (
	TaskQueue = "queue"
	TaskRetry = "retry"
	TaskPurge = "purge"
)

const (
	resultOK      = "ok"
	resultError   = "error"
	resultSkipped = "skipped"

	purgeLeaseTTL = time.Hour

	defaultStaleSendingAfter = 2 * time.Minute
)

// Ticker is the subset of time.Ticker the scheduler needs.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct{ *time.Ticker }

func (t timeTicker) Chan() <-chan time.Time { return t.C }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTaskLock makes every run take a cross-instance lease first.
func WithTaskLock(lock ports.TaskLock) Option {
	return func(s *Scheduler) { s.lock = lock }
}

// WithTicker replaces time.NewTicker for the interval tasks.
func WithTicker(f TickerFactory) Option {
	return func(s *Scheduler) { s.newTicker = f }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

type task struct {
	name     string
	schedule string
	every    time.Duration // zero for cron tasks
	lease    time.Duration
	run      func(ctx context.Context) error

	busy    atomic.Bool
	runs    atomic.Int64
	skipped atomic.Int64

	mu        sync.Mutex
	lastRunAt *time.Time
	lastErr   string
}

// Scheduler implements ports.Scheduler.
type Scheduler struct {
	deliveries ports.DeliveryRepository
	worker     ports.DeliveryWorker
	lock       ports.TaskLock
	cfg        config.SchedulerConfig
	log        zerolog.Logger
	newTicker  TickerFactory
	now        func() time.Time

	tasks  []*task
	byName map[string]*task

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	cron    *cron.Cron
	wg      sync.WaitGroup
}

var _ ports.Scheduler = (*Scheduler)(nil)

// New creates a stopped scheduler.
func New(
	deliveries ports.DeliveryRepository,
	worker ports.DeliveryWorker,
	cfg config.SchedulerConfig,
	log zerolog.Logger,
	opts ...Option,
) *Scheduler {
	s := &Scheduler{
		deliveries: deliveries,
		worker:     worker,
		cfg:        cfg,
		log:        logger.Component(log, "scheduler"),
		newTicker:  newTimeTicker,
		now:        time.Now,
	}
	if s.cfg.StaleSendingAfter <= 0 {
		s.cfg.StaleSendingAfter = defaultStaleSendingAfter
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.tasks = []*task{
		{name: TaskQueue, every: cfg.QueueInterval, lease: cfg.QueueInterval, run: s.processQueue},
		{name: TaskRetry, every: cfg.RetryInterval, lease: cfg.RetryInterval, run: s.processRetries},
		{name: TaskPurge, schedule: cfg.PurgeCron, lease: purgeLeaseTTL, run: s.purge},
	}
	s.byName = make(map[string]*task, len(s.tasks))
	for _, t := range s.tasks {
		if t.every > 0 {
			t.schedule = "@every " + t.every.String()
		}
		s.byName[t.name] = t
	}
	return s
}

// Start launches the tickers. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)

	c := cron.New(cron.WithLocation(time.UTC))
	purge := s.byName[TaskPurge]
	if _, err := c.AddFunc(purge.schedule, func() { s.execute(runCtx, purge) }); err != nil {
		cancel()
		return fmt.Errorf("invalid purge schedule %q: %w", purge.schedule, err)
	}

	for _, t := range s.tasks {
		if t.every <= 0 {
			continue
		}
		ticker := s.newTicker(t.every)
		s.wg.Add(1)
		go s.loop(runCtx, t, ticker)
	}
	c.Start()

	s.cron = c
	s.cancel = cancel
	s.running = true

	s.log.Info().
		Dur("queue_interval", s.cfg.QueueInterval).
		Dur("retry_interval", s.cfg.RetryInterval).
		Str("purge_cron", s.cfg.PurgeCron).
		Dur("stale_sending_after", s.cfg.StaleSendingAfter).
		Bool("task_lock", s.lock != nil).
		Msg("scheduler started")
	if s.lock == nil {
		s.log.Warn().Msg("no distributed task lock; running several instances may send a delivery more than once")
	}
	return nil
}

// loop fires t on every tick. Runs are detached so a slow run makes the next
// tick hit the busy flag instead of piling up behind it.
func (s *Scheduler) loop(ctx context.Context, t *task, ticker Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.execute(ctx, t)
			}()
		}
	}
}

// Stop cancels the tickers and waits for in-flight runs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, c := s.cancel, s.cron
	s.cancel, s.cron = nil, nil
	s.mu.Unlock()

	cancel()
	<-c.Stop().Done()
	s.wg.Wait()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Status reports the scheduler and each task.
func (s *Scheduler) Status() ports.SchedulerStatus {
	out := ports.SchedulerStatus{
		Running: s.IsRunning(),
		Tasks:   make([]ports.TaskStatus, 0, len(s.tasks)),
	}
	for _, t := range s.tasks {
		t.mu.Lock()
		ts := ports.TaskStatus{
			Name:      t.name,
			Schedule:  t.schedule,
			Busy:      t.busy.Load(),
			Runs:      t.runs.Load(),
			Skipped:   t.skipped.Load(),
			LastRunAt: t.lastRunAt,
			LastError: t.lastErr,
		}
		t.mu.Unlock()
		out.Tasks = append(out.Tasks, ts)
	}
	return out
}

// Trigger runs a task now, on the caller's goroutine. It works whether or
// not the scheduler is started.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	t, ok := s.byName[name]
	if !ok {
		return apperror.ErrUnknownTask(name)
	}
	ran, err := s.execute(ctx, t)
	if !ran {
		return apperror.ErrTaskBusy(name)
	}
	return err
}

// execute runs t unless it is already running here or, with a task lock,
// on another instance. It reports whether the task ran.
func (s *Scheduler) execute(ctx context.Context, t *task) (bool, error) {
	if !t.busy.CompareAndSwap(false, true) {
		t.skipped.Add(1)
		metrics.SchedulerRuns.WithLabelValues(t.name, resultSkipped).Inc()
		s.log.Debug().Str("task", t.name).Msg("previous run still in progress, skipping")
		return false, nil
	}
	defer t.busy.Store(false)

	if s.lock != nil {
		key := "scheduler:" + t.name
		acquired, err := s.lock.Acquire(ctx, key, t.lease)
		if err != nil {
			s.log.Warn().Err(err).Str("task", t.name).Msg("task lock unavailable, running anyway")
		} else if !acquired {
			t.skipped.Add(1)
			metrics.SchedulerRuns.WithLabelValues(t.name, resultSkipped).Inc()
			s.log.Debug().Str("task", t.name).Msg("task held by another instance, skipping")
			return false, nil
		} else {
			defer func() {
				if err := s.lock.Release(context.WithoutCancel(ctx), key); err != nil {
					s.log.Warn().Err(err).Str("task", t.name).Msg("task lock release failed")
				}
			}()
		}
	}

	started := s.now().UTC()
	err := t.run(ctx)

	t.runs.Add(1)
	t.mu.Lock()
	t.lastRunAt = &started
	t.lastErr = ""
	if err != nil {
		t.lastErr = err.Error()
	}
	t.mu.Unlock()

	result := resultOK
	if err != nil {
		result = resultError
		s.log.Error().Err(err).Str("task", t.name).Msg("scheduler task failed")
	}
	metrics.SchedulerRuns.WithLabelValues(t.name, result).Inc()
	return true, err
}

func (s *Scheduler) processQueue(ctx context.Context) error {
	now := s.now().UTC()
	s.releaseStale(ctx, now)

	due, err := s.deliveries.ListDue(ctx, now, s.cfg.QueueBatchSize)
	if err != nil {
		return fmt.Errorf("list due deliveries: %w", err)
	}
	s.sendBatch(ctx, TaskQueue, due)
	return nil
}

// releaseStale recovers deliveries whose worker died between claim and
// result. A failure here never blocks the queue.
func (s *Scheduler) releaseStale(ctx context.Context, now time.Time) {
	cutoff := now.Add(-s.cfg.StaleSendingAfter)
	n, err := s.deliveries.ReleaseStale(ctx, cutoff, now)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to release stale deliveries")
		return
	}
	if n > 0 {
		s.log.Warn().Int64("released", n).Time("cutoff", cutoff).Msg("interrupted deliveries released")
	}
}

func (s *Scheduler) processRetries(ctx context.Context) error {
	due, err := s.deliveries.ListRetryable(ctx, s.now().UTC(), s.cfg.RetryBatchSize)
	if err != nil {
		return fmt.Errorf("list retryable deliveries: %w", err)
	}
	s.sendBatch(ctx, TaskRetry, due)
	return nil
}

func (s *Scheduler) sendBatch(ctx context.Context, name string, batch []domain.Delivery) {
	if len(batch) == 0 {
		return
	}
	res := s.worker.ProcessBatch(ctx, batch)
	s.log.Info().
		Str("task", name).
		Int("processed", res.Processed).
		Int("delivered", res.Delivered).
		Int("retrying", res.Retrying).
		Int("failed", res.Failed).
		Int("skipped", res.Skipped).
		Int("errors", res.Errors).
		Msg("batch processed")
}

// purge never touches PENDING or SENDING rows; the repository only deletes finished ones.
func (s *Scheduler) purge(ctx context.Context) error {
	cutoff := s.now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)
	n, err := s.deliveries.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge deliveries: %w", err)
	}
	s.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("old deliveries purged")
	return nil
}
