package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
)

// SchedulerConfig carries the loop timings.
type SchedulerConfig struct {
	TickInterval      time.Duration // sleep between sweeps
	BoostTickInterval time.Duration // sleep while any loaded alert is boosted
	AlertThrottle     time.Duration // delay between two alerts in one sweep
	Backoff           time.Duration // sleep after a sweep-level failure
	ReclaimEveryTicks int           // full reclaim period, in ticks
}

// Scheduler is the top-level driver. Each tick it loads the active alerts,
// processes the due ones sequentially, and sleeps. Alerts are processed one
// at a time to completion, which both bounds the request rate toward the
// provider and guarantees a single writer per alert row.
type Scheduler struct {
	alerts    domain.AlertRepository
	processor *AlertProcessor
	reclaimer *Reclaimer
	cadence   CadencePolicy
	cfg       SchedulerConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewScheduler(
	alerts domain.AlertRepository,
	processor *AlertProcessor,
	reclaimer *Reclaimer,
	cadence CadencePolicy,
	cfg SchedulerConfig,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		alerts:    alerts,
		processor: processor,
		reclaimer: reclaimer,
		cadence:   cadence,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run ticks until ctx is cancelled. A failure inside a sweep never kills
// the loop: it is logged and the loop backs off briefly before resuming.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler starting",
		zap.Duration("tick", s.cfg.TickInterval),
		zap.Duration("boost_tick", s.cfg.BoostTickInterval),
		zap.Int("reclaim_every", s.cfg.ReclaimEveryTicks))

	s.reclaimer.Run(ctx)

	tick := 0
	for {
		tick++
		sleep, err := s.runTick(ctx, tick)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.logger.Error("tick failed, backing off", zap.Int("tick", tick), zap.Error(err))
			sleep = s.cfg.Backoff
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping")
			return nil
		case <-time.After(sleep):
		}
	}

	s.logger.Info("scheduler stopping")
	return nil
}

func (s *Scheduler) runTick(ctx context.Context, tick int) (sleep time.Duration, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("tick panic: %v", rec)
		}
	}()

	start := s.now()

	s.reclaimer.ExpireBoosts(ctx)
	if s.cfg.ReclaimEveryTicks > 0 && tick%s.cfg.ReclaimEveryTicks == 0 {
		s.reclaimer.Run(ctx)
	}

	alerts, err := s.alerts.ListActive(ctx, start)
	if err != nil {
		return 0, err
	}

	boosted := false
	var processed int
	var total CycleStats
	for _, alert := range alerts {
		if alert.Boosted(s.now()) {
			boosted = true
		}
		if !s.cadence.IsDue(alert, s.now()) {
			continue
		}
		if ctx.Err() != nil {
			// Shutdown requested; the in-flight alert finished, stop
			// before starting another cycle.
			return 0, ctx.Err()
		}

		stats := s.processor.Process(ctx, alert.ID)
		processed++
		total.NewSlots += stats.NewSlots
		total.Notifications += stats.Notifications
		total.Errors += stats.Errors

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(s.cfg.AlertThrottle):
		}
	}

	s.logger.Info("tick complete",
		zap.Int("tick", tick),
		zap.Int("active_alerts", len(alerts)),
		zap.Int("processed", processed),
		zap.Int("new_slots", total.NewSlots),
		zap.Int("notifications", total.Notifications),
		zap.Int("errors", total.Errors),
		zap.Duration("duration", s.now().Sub(start)))

	if boosted {
		return s.cfg.BoostTickInterval, nil
	}
	return s.cfg.TickInterval, nil
}
