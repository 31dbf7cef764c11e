package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"infracore-tile/internal/logging"
)

var (
	// ErrAlreadyMounted is returned when starting a scheduler that is running.
	ErrAlreadyMounted = errors.New("scheduler already running")
	// ErrInvalidPeriod is returned when a task has a period of zero or less.
	ErrInvalidPeriod = errors.New("task period must be positive")
)

// Task is a callback executed on a fixed period.
type Task struct {
	Name   string
	Period time.Duration
	Run    func(ctx context.Context)
}

// Scheduler runs periodic tasks between Start and Stop. Each task owns its
// goroutine; Stop cancels all of them and waits for them to exit.
type Scheduler struct {
	tasks []Task

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewScheduler creates a scheduler for the given tasks.
func NewScheduler(tasks ...Task) *Scheduler {
	return &Scheduler{tasks: tasks}
}

// Start registers every task. Tasks keep running until Stop is called or ctx
// is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyMounted
	}
	for _, t := range s.tasks {
		if t.Period <= 0 {
			return fmt.Errorf("task %q: %w", t.Name, ErrInvalidPeriod)
		}
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
	return nil
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	defer s.wg.Done()
	log := logging.FromContext(ctx)
	log.Debug("task registered", "task", t.Name, "period", t.Period)
	ticker := time.NewTicker(t.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			t.Run(ctx)
		case <-ctx.Done():
			log.Debug("task cancelled", "task", t.Name)
			return
		}
	}
}

// Stop cancels all tasks and blocks until none is running. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()
	s.wg.Wait()
}

// Running reports whether the tasks are registered.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
