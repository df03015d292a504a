// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"penhub-service/internal/domain"
	"penhub-service/pkg/locker"
)

// SweepScheduler periodically purges trashed works whose retention
// window has elapsed. A distributed lock keeps multiple service
// instances from sweeping at the same time.
type SweepScheduler struct {
	works     domain.WorkRepository
	retention time.Duration
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	locker    locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SweepConfig holds sweep scheduler configuration.
type SweepConfig struct {
	Retention time.Duration
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewSweepScheduler creates a new SweepScheduler.
func NewSweepScheduler(
	works domain.WorkRepository,
	cfg SweepConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *SweepScheduler {
	retention := cfg.Retention
	if retention <= 0 {
		retention = domain.TrashRetention
	}

	return &SweepScheduler{
		works:     works,
		retention: retention,
		interval:  cfg.Interval,
		timeout:   cfg.Timeout,
		logger:    logger,
		locker:    locker,
	}
}

// Start begins the background sweep job.
func (s *SweepScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting trash sweep scheduler",
		zap.Duration("interval", s.interval),
		zap.Duration("retention", s.retention),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *SweepScheduler) Stop() {
	s.logger.Info("stopping trash sweep scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("trash sweep scheduler stopped")
}

func (s *SweepScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeSweep()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeSweep()
		}
	}
}

// executeSweep runs one sweep pass under a distributed lock.
//
// The lock TTL equals the sweep interval (cooldown model): after a
// successful pass the lock is left to expire so no other instance
// repeats the work, while a failed pass releases it immediately so
// another instance can retry.
func (s *SweepScheduler) executeSweep() {
	const lockKey = "trash:sweep:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire sweep lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is sweeping, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)

	purged, err := s.works.SweepTrash(ctx, cutoff)
	if err != nil {
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after sweep error", zap.Error(relErr))
		}
		s.logger.Error("trash sweep failed, lock released for retry", zap.Error(err))

		return
	}

	s.logger.Info("trash sweep completed, lock held for cooldown",
		zap.Int64("purged", purged),
		zap.Time("cutoff", cutoff),
		zap.Duration("cooldown", s.interval),
	)
}
