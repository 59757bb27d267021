// Package poller drives periodic Poll calls for every platform. Multiple
// scheduler processes may run at once; a per-platform lease in the state
// store keeps each platform's poll single-concurrency.
package poller

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/internal/logging"
)

// PollFunc observes one platform. Observation failures are absorbed by the
// poll itself; an error here means the store was unreachable.
type PollFunc func(ctx context.Context, platformID int64) error

// Options configures a Scheduler.
type Options struct {
	// Interval between sweeps. Defaults to 30s.
	Interval time.Duration
	// LeaseTTL bounds how long a crashed worker blocks a platform.
	// Defaults to twice the interval.
	LeaseTTL time.Duration
	// Workers bounds concurrent polls per sweep. Defaults to 4.
	Workers int
	// Holder identifies this process in the lease table. Defaults to
	// hostname plus a random suffix.
	Holder string
}

// Scheduler sweeps the platform table on a ticker and polls each platform
// it can lease.
type Scheduler struct {
	platforms domain.PlatformRepository
	states    domain.PlatformStateRepository
	poll      PollFunc

	interval time.Duration
	leaseTTL time.Duration
	workers  int
	holder   string
}

// New constructs a Scheduler.
func New(platforms domain.PlatformRepository, states domain.PlatformStateRepository, poll PollFunc, opts *Options) *Scheduler {
	s := &Scheduler{
		platforms: platforms,
		states:    states,
		poll:      poll,
		interval:  30 * time.Second,
		workers:   4,
	}
	if opts != nil {
		if opts.Interval > 0 {
			s.interval = opts.Interval
		}
		if opts.LeaseTTL > 0 {
			s.leaseTTL = opts.LeaseTTL
		}
		if opts.Workers > 0 {
			s.workers = opts.Workers
		}
		s.holder = opts.Holder
	}
	if s.leaseTTL == 0 {
		s.leaseTTL = 2 * s.interval
	}
	if s.holder == "" {
		host, _ := os.Hostname()
		s.holder = fmt.Sprintf("%s-%s", host, uuid.NewString()[:8])
	}
	return s
}

// Run sweeps until the context is cancelled. In-flight polls finish; no
// new ones start after cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Info(ctx, "poll scheduler started",
		"interval", s.interval.String(), "workers", s.workers, "holder", s.holder)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "poll scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep polls every platform it can lease, fanning out over a bounded
// worker pool and waiting for the whole sweep to finish.
func (s *Scheduler) sweep(ctx context.Context) {
	logger := logging.FromContext(ctx)

	platforms, err := s.platforms.List(ctx)
	if err != nil {
		logger.Error(ctx, "listing platforms for poll sweep", "error", err)
		return
	}
	if len(platforms) == 0 {
		return
	}

	jobs := make(chan int64)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				s.pollOne(ctx, id)
			}
		}()
	}
	for _, p := range platforms {
		if ctx.Err() != nil {
			break
		}
		jobs <- p.ID
	}
	close(jobs)
	wg.Wait()
}

// pollOne runs a single lease-guarded poll.
func (s *Scheduler) pollOne(ctx context.Context, platformID int64) {
	logger := logging.FromContext(ctx)

	acquired, err := s.states.AcquirePollLease(ctx, platformID, s.holder, s.leaseTTL)
	if err != nil {
		logger.Error(ctx, "acquiring poll lease", "platform_id", platformID, "error", err)
		return
	}
	if !acquired {
		logger.Debug(ctx, "poll lease held elsewhere", "platform_id", platformID)
		return
	}
	defer func() {
		if err := s.states.ReleasePollLease(ctx, platformID, s.holder); err != nil {
			logger.Error(ctx, "releasing poll lease", "platform_id", platformID, "error", err)
		}
	}()

	if err := s.poll(ctx, platformID); err != nil {
		logger.Error(ctx, "poll failed", "platform_id", platformID, "error", err)
	}
}
