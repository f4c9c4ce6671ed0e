package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bullion/internal/scheduler"
)

// DefaultInterval between two scheduled fetches.
const DefaultInterval = 5 * time.Second

// Updater runs one fetch cycle.
type Updater interface {
	UpdatePrices(ctx context.Context)
}

// UpdaterFunc is a function adapter for Updater.
type UpdaterFunc func(ctx context.Context)

func (f UpdaterFunc) UpdatePrices(ctx context.Context) {
	f(ctx)
}

type Poller struct {
	logger   *slog.Logger
	updater  Updater
	interval time.Duration
	loc      *time.Location

	mu    sync.Mutex
	sched *scheduler.Scheduler
}

// New creates a Poller. A non-positive interval means DefaultInterval.
func New(logger *slog.Logger, updater Updater, interval time.Duration) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Poller{
		logger:   logger.With("component", "poller"),
		updater:  updater,
		interval: interval,
		loc:      time.UTC,
	}
}

// Start fetches immediately and then once per interval until Stop or ctx is done.
// Calling Start on a running poller does nothing; after Stop or ctx is done it starts again.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sched != nil {
		p.logger.Debug("poller already started")
		return nil
	}

	sched := scheduler.New(ctx, p.loc)
	sched.Every(p.interval, p.updater.UpdatePrices)
	if err := sched.Start(); err != nil {
		return err
	}

	p.sched = sched
	p.logger.Info("price poller started", "interval", p.interval)

	go p.release(sched)
	return nil
}

// release forgets sched once it stops, so a poller whose context ended can be started again.
func (p *Poller) release(sched *scheduler.Scheduler) {
	<-sched.Done()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sched == sched {
		p.sched = nil
		p.logger.Info("price poller stopped with its context")
	}
}

// RefreshNow runs a fetch cycle out of schedule and returns when it is done.
func (p *Poller) RefreshNow(ctx context.Context) {
	p.logger.Debug("manual refresh")
	p.updater.UpdatePrices(ctx)
}

// Stop cancels the timer. It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	sched := p.sched
	p.sched = nil
	p.mu.Unlock()

	if sched == nil {
		return
	}

	sched.Stop()
	p.logger.Info("price poller stopped")
}

// Running reports whether a timer is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.sched != nil
}
