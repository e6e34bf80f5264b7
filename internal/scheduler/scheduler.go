// Package scheduler runs named jobs on fixed intervals. Jobs receive a context that is
// cancelled when the scheduler stops, so in-flight work is aborted on teardown.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ErrNotRunning is returned by RunNow while the scheduler is stopped.
var ErrNotRunning = errors.New("scheduler is not running")

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// JobFunc adapts a function into a Job.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (j JobFunc) Name() string                  { return j.JobName }
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

type entry struct {
	id       cron.EntryID
	job      Job
	interval time.Duration
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger

	mu      sync.Mutex
	entries map[string]entry
	order   []string
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup // immediate and on-demand runs; cron tracks its own
}

// New creates a new scheduler. Scheduled runs of a job that is still running are skipped
// and panics inside jobs are recovered.
func New(log zerolog.Logger) *Scheduler {
	log = log.With().Str("component", "scheduler").Logger()
	cl := cronLogger{log: log}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:     log,
		entries: make(map[string]entry),
	}
}

// AddJob registers a job to run every interval. Cron resolution is one second, so shorter
// intervals run once per second.
func (s *Scheduler) AddJob(interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[job.Name()]; exists {
		return fmt.Errorf("job %s already registered", job.Name())
	}

	id := s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		s.execute(job)
	}))

	s.entries[job.Name()] = entry{id: id, job: job, interval: interval}
	s.order = append(s.order, job.Name())

	s.log.Info().
		Dur("interval", interval).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

// Start runs every registered job once, then on its schedule. Calling Start after Stop
// restarts the same jobs with a fresh context.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn().Msg("Scheduler already started, ignoring")
		return
	}

	// Wrapped jobs share the skip-if-running guard with scheduled runs.
	initial := make([]cron.Job, 0, len(s.order))
	for _, name := range s.order {
		if wrapped := s.cron.Entry(s.entries[name].id).WrappedJob; wrapped != nil {
			initial = append(initial, wrapped)
		}
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true
	s.cron.Start()

	for _, wrapped := range initial {
		wrapped := wrapped // per-iteration copy (go directive < 1.22)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			wrapped.Run()
		}()
	}

	s.log.Info().Int("jobs", len(s.order)).Msg("Scheduler started")
}

// Stop cancels in-flight jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()

	s.log.Info().Msg("Scheduler stopped")
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunNow executes a job immediately (outside schedule). The run is not subject to the
// skip-if-running guard.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("unknown job %s", name)
	}
	if !s.running {
		return ErrNotRunning
	}

	s.log.Debug().Str("job", name).Msg("Running job immediately")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(e.job)
	}()
	return nil
}

func (s *Scheduler) currentContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Scheduler) execute(job Job) {
	ctx := s.currentContext()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	s.log.Debug().Str("job", job.Name()).Msg("Running job")

	if err := job.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log.Error().
			Err(err).
			Str("job", job.Name()).
			Msg("Job failed")
		return
	}
	s.log.Debug().Str("job", job.Name()).Msg("Job completed")
}

// cronLogger routes cron's own logging into zerolog. Cron logs every wake-up at info, so
// those go to debug.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
