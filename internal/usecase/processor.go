package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
)

// CycleStats summarizes one check cycle for one alert.
type CycleStats struct {
	NewSlots      int
	Notifications int
	Errors        int
}

// AlertProcessor runs one full check cycle for a single alert: reload,
// fetch, classify, persist, notify, update state. Any failure abandons the
// cycle for this alert only; the alert is retried at its next regular tick
// because last_checked_at is written only at the end of a successful cycle.
type AlertProcessor struct {
	alerts     domain.AlertRepository
	clubs      domain.ClubRepository
	ledger     domain.SlotLedger
	provider   domain.AvailabilityProvider
	classifier *SlotClassifier
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
}

func NewAlertProcessor(
	alerts domain.AlertRepository,
	clubs domain.ClubRepository,
	ledger domain.SlotLedger,
	provider domain.AvailabilityProvider,
	notifier Notifier,
	logger *zap.Logger,
) *AlertProcessor {
	return &AlertProcessor{
		alerts:     alerts,
		clubs:      clubs,
		ledger:     ledger,
		provider:   provider,
		classifier: NewSlotClassifier(ledger),
		notifier:   notifier,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (p *AlertProcessor) Process(ctx context.Context, alertID uuid.UUID) CycleStats {
	var stats CycleStats

	alert, err := p.alerts.GetByID(ctx, alertID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			p.logger.Error("failed to reload alert", zap.String("alert_id", alertID.String()), zap.Error(err))
			stats.Errors++
		}
		return stats
	}
	if !alert.Active {
		return stats
	}

	now := p.now()
	if alert.TargetDate.Before(startOfDay(now)) {
		// Terminal transition, idempotent under repeated invocation.
		if err := p.alerts.Deactivate(ctx, alert.ID); err != nil {
			p.logger.Error("failed to deactivate expired alert", zap.String("alert_id", alert.ID.String()), zap.Error(err))
			stats.Errors++
			return stats
		}
		p.logger.Info("alert expired, deactivated", zap.String("alert_id", alert.ID.String()))
		return stats
	}

	club, err := p.clubs.GetByID(ctx, alert.ClubID)
	if err != nil {
		p.logger.Error("club not resolvable",
			zap.String("alert_id", alert.ID.String()),
			zap.String("club_id", alert.ClubID.String()),
			zap.Error(err))
		stats.Errors++
		return stats
	}

	isBaseline := !alert.BaselineDone
	p.logger.Debug("checking alert",
		zap.String("alert_id", alert.ID.String()),
		zap.String("club", club.Name),
		zap.String("date", alert.TargetDate.Format("2006-01-02")),
		zap.Bool("baseline", isBaseline))

	slots, err := p.provider.FetchSlots(ctx, domain.LocationQuery{
		LocationID: club.DoinsportID.String(),
		Date:       alert.TargetDate,
		TimeFrom:   alert.TimeFrom,
		TimeTo:     alert.TimeTo,
		IndoorOnly: alert.IndoorOnly,
	})
	if err != nil {
		// last_checked_at stays untouched so the alert is retried at its
		// next regular tick, never in a tight loop.
		p.logger.Warn("availability fetch failed", zap.String("alert_id", alert.ID.String()), zap.Error(err))
		stats.Errors++
		return stats
	}

	fresh, err := p.classifier.Classify(ctx, alert.ID, slots)
	if err != nil {
		p.logger.Error("ledger lookup failed", zap.String("alert_id", alert.ID.String()), zap.Error(err))
		stats.Errors++
		return stats
	}

	for _, slot := range fresh {
		detected := domain.DetectedSlot{
			AlertID:         alert.ID,
			ClubID:          club.ID,
			PlaygroundID:    slot.PlaygroundID,
			PlaygroundName:  slot.PlaygroundName,
			Date:            slot.Date,
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
			PriceTotal:      slot.PriceTotal,
			Indoor:          slot.Indoor,
			DetectedAt:      p.now(),
		}
		if err := p.ledger.Insert(ctx, &detected); err != nil {
			if errors.Is(err, domain.ErrDuplicateSlot) {
				// Lost a race against a previous partial cycle; the slot is
				// already known, so no notification either.
				continue
			}
			p.logger.Error("failed to persist detected slot", zap.String("alert_id", alert.ID.String()), zap.Error(err))
			stats.Errors++
			continue
		}
		stats.NewSlots++

		if isBaseline {
			continue
		}
		p.logger.Info("new slot detected",
			zap.String("alert_id", alert.ID.String()),
			zap.String("playground", slot.PlaygroundName),
			zap.String("date", slot.Date.Format("2006-01-02")),
			zap.String("start", slot.StartTime))
		if p.notifier.Notify(ctx, *alert, *club, detected) {
			stats.Notifications++
		}
	}

	if isBaseline {
		if err := p.alerts.EstablishBaseline(ctx, alert.ID); err != nil {
			p.logger.Error("failed to establish baseline", zap.String("alert_id", alert.ID.String()), zap.Error(err))
			stats.Errors++
			return stats
		}
		p.logger.Info("baseline established",
			zap.String("alert_id", alert.ID.String()),
			zap.Int("known_slots", len(slots)))
	}

	if err := p.alerts.MarkChecked(ctx, alert.ID, p.now()); err != nil {
		p.logger.Error("failed to mark alert checked", zap.String("alert_id", alert.ID.String()), zap.Error(err))
		stats.Errors++
	}
	return stats
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
