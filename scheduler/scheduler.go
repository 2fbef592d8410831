package scheduler

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInterval is the pause between queue drains.
const DefaultInterval = 500 * time.Millisecond

// Job is a self-contained unit of deferred work. It must capture everything
// it needs by value; the scheduler runs it once and discards it.
type Job func()

type queuedJob struct {
	id  string
	run Job
}

// Scheduler owns a job queue and the single worker goroutine that drains it.
//
// Contract:
// - Concurrency: Schedule is safe for concurrent use.
// - Ordering: jobs run in FIFO enqueue order relative to each other, with
//   no start-latency bound beyond the polling interval.
// - Lifecycle: the worker starts on first Schedule and is never stopped.
type Scheduler struct {
	interval time.Duration
	clk      clock.Clock
	log      *zap.Logger

	mu      sync.Mutex
	queue   []queuedJob
	started bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval overrides the drain cadence. Default: DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock substitutes the clock, letting tests drive the cadence.
func WithClock(clk clock.Clock) Option {
	return func(s *Scheduler) {
		if clk != nil {
			s.clk = clk
		}
	}
}

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Scheduler. The worker goroutine is not started until the
// first job is scheduled.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		interval: DefaultInterval,
		clk:      clock.New(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule enqueues a job and returns immediately. The first call starts
// the worker.
func (s *Scheduler) Schedule(job Job) {
	j := queuedJob{id: uuid.NewString(), run: job}

	s.mu.Lock()
	s.queue = append(s.queue, j)
	pending := len(s.queue)
	start := !s.started
	s.started = true
	s.mu.Unlock()

	s.log.Debug("job enqueued", zap.String("job", j.id), zap.Int("pending", pending))

	if start {
		go s.loop()
	}
}

// Pending reports the number of jobs waiting for the next drain.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// loop drains the queue in batches forever. The swap keeps the queue mutex
// hold time independent of job duration.
func (s *Scheduler) loop() {
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, j := range batch {
			s.log.Debug("job running", zap.String("job", j.id))
			j.run()
		}

		s.clk.Sleep(s.interval)
	}
}
