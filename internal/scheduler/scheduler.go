// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. The context is cancelled after the job timeout.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with per-job logging and timeouts.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// New creates a Scheduler whose jobs are cancelled after timeout.
func New(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		timeout: timeout,
	}
}

// Add registers job under name on a standard five-field cron spec.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	log.Printf("Scheduled job %s (%s)", name, spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		log.Printf("Job %s failed after %s: %v", name, time.Since(start), err)
		return
	}
	log.Printf("Job %s completed in %s", name, time.Since(start))
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Println("Scheduler stop timed out with jobs still running")
	}
}
