package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

type JobFunc func(ctx context.Context)

type job struct {
	interval time.Duration
	fn       JobFunc
}

// Scheduler runs interval jobs until it is stopped or its context is done.
type Scheduler struct {
	s    *gocron.Scheduler
	ctx  context.Context
	jobs []job

	stopped  chan struct{}
	stopOnce sync.Once
}

func New(ctx context.Context, loc *time.Location) *Scheduler {
	return &Scheduler{s: gocron.NewScheduler(loc), ctx: ctx, stopped: make(chan struct{})}
}

// Every adds a job running right after Start and then once per interval.
func (sch *Scheduler) Every(interval time.Duration, fn JobFunc) {
	sch.jobs = append(sch.jobs, job{interval: interval, fn: fn})
}

// Start schedules the jobs and returns without waiting for them.
func (sch *Scheduler) Start() error {
	for _, j := range sch.jobs {
		_, err := sch.s.Every(j.interval).StartImmediately().Do(func(fn JobFunc) {
			select {
			case <-sch.ctx.Done():
				return
			default:
				fn(sch.ctx)
			}
		}, j.fn)
		if err != nil {
			return fmt.Errorf("schedule job every %s: %w", j.interval, err)
		}
	}
	sch.s.StartAsync()

	go func() {
		select {
		case <-sch.ctx.Done():
			sch.Stop()
		case <-sch.stopped:
		}
	}()

	return nil
}

// Stop prevents any further run. Runs already in progress are not interrupted.
func (sch *Scheduler) Stop() {
	sch.stopOnce.Do(func() {
		sch.s.Stop()
		close(sch.stopped)
	})
}

// Done is closed once the scheduler is stopped, by Stop or by its context.
func (sch *Scheduler) Done() <-chan struct{} {
	return sch.stopped
}
