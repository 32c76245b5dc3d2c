package usecase

import (
	"context"
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
)

// Reclaimer sweeps expired state: spent boost windows, alerts whose target
// date has passed, and detected slots past the retention window. The three
// units are independent and individually idempotent; one failing leaves the
// others' work intact.
type Reclaimer struct {
	alerts        domain.AlertRepository
	ledger        domain.SlotLedger
	retentionDays int
	logger        *zap.Logger
	now           func() time.Time
}

func NewReclaimer(alerts domain.AlertRepository, ledger domain.SlotLedger, retentionDays int, logger *zap.Logger) *Reclaimer {
	return &Reclaimer{
		alerts:        alerts,
		ledger:        ledger,
		retentionDays: retentionDays,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ExpireBoosts clears boost flags whose window has ended. Called inline on
// every scheduler tick since boost windows are short relative to the full
// reclaim period.
func (r *Reclaimer) ExpireBoosts(ctx context.Context) {
	expired, err := r.alerts.ExpireBoosts(ctx, r.now())
	if err != nil {
		r.logger.Error("boost expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		r.logger.Info("boosts expired", zap.Int64("count", expired))
	}
}

// Run performs the full sweep.
func (r *Reclaimer) Run(ctx context.Context) {
	r.ExpireBoosts(ctx)

	now := r.now()
	today := startOfDay(now)

	deactivated, err := r.alerts.DeactivateExpired(ctx, today)
	if err != nil {
		r.logger.Error("alert expiry sweep failed", zap.Error(err))
	} else if deactivated > 0 {
		r.logger.Info("expired alerts deactivated", zap.Int64("count", deactivated))
	}

	cutoff := today.AddDate(0, 0, -r.retentionDays)
	pruned, err := r.ledger.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		r.logger.Error("slot pruning failed", zap.Error(err))
	} else if pruned > 0 {
		r.logger.Info("old detected slots pruned",
			zap.Int64("count", pruned),
			zap.String("cutoff", cutoff.Format("2006-01-02")))
	}
}
