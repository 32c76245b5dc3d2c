package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
)

// Notifier fans one detected slot out to the owner's channels.
type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert, club domain.Club, detected domain.DetectedSlot) bool
}

// NotificationDispatcher sends email plus a push to every active device
// token. Channels and endpoints are independent: one failure never blocks
// the others, and nothing is rolled back. The detected slot row itself is
// the at-most-once guard, so the dispatcher is only ever called right after
// a row is first created.
type NotificationDispatcher struct {
	identity domain.IdentityResolver
	email    domain.EmailSender
	push     domain.PushSender
	tokens   domain.PushTokenRepository
	ledger   domain.SlotLedger
	logger   *zap.Logger
}

func NewNotificationDispatcher(
	identity domain.IdentityResolver,
	email domain.EmailSender,
	push domain.PushSender,
	tokens domain.PushTokenRepository,
	ledger domain.SlotLedger,
	logger *zap.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		identity: identity,
		email:    email,
		push:     push,
		tokens:   tokens,
		ledger:   ledger,
		logger:   logger,
	}
}

func (d *NotificationDispatcher) Notify(ctx context.Context, alert domain.Alert, club domain.Club, detected domain.DetectedSlot) bool {
	notification := domain.SlotNotification{
		ClubName:   club.Name,
		AlertID:    alert.ID,
		BookingURL: bookingURL(club),
		Slot: domain.Slot{
			PlaygroundID:    detected.PlaygroundID,
			PlaygroundName:  detected.PlaygroundName,
			Date:            detected.Date,
			StartTime:       detected.StartTime,
			DurationMinutes: detected.DurationMinutes,
			PriceTotal:      detected.PriceTotal,
			Indoor:          detected.Indoor,
		},
	}

	emailOK := d.sendEmail(ctx, alert, detected, notification)
	pushOK := d.sendPushes(ctx, alert, detected, notification)
	return emailOK || pushOK
}

func (d *NotificationDispatcher) sendEmail(ctx context.Context, alert domain.Alert, detected domain.DetectedSlot, n domain.SlotNotification) bool {
	contact, err := d.identity.Resolve(ctx, alert.UserID)
	if err != nil {
		d.logger.Warn("contact lookup failed",
			zap.String("alert_id", alert.ID.String()),
			zap.String("user_id", alert.UserID.String()),
			zap.Error(err))
		return false
	}

	if err := d.email.SendSlotEmail(ctx, contact.Email, contact.Name, n); err != nil {
		d.logger.Warn("email send failed", zap.String("alert_id", alert.ID.String()), zap.Error(err))
		return false
	}

	if err := d.ledger.MarkNotified(ctx, detected.ID, domain.ChannelEmail, time.Now().UTC()); err != nil {
		d.logger.Warn("failed to record email outcome", zap.String("slot_id", detected.ID.String()), zap.Error(err))
	}
	return true
}

func (d *NotificationDispatcher) sendPushes(ctx context.Context, alert domain.Alert, detected domain.DetectedSlot, n domain.SlotNotification) bool {
	tokens, err := d.tokens.ListActiveByUser(ctx, alert.UserID)
	if err != nil {
		d.logger.Warn("push token lookup failed", zap.String("user_id", alert.UserID.String()), zap.Error(err))
		return false
	}

	delivered := false
	for _, token := range tokens {
		if err := d.push.SendSlotPush(ctx, token.Token, n); err != nil {
			d.logger.Warn("push send failed",
				zap.String("alert_id", alert.ID.String()),
				zap.String("device_type", token.DeviceType),
				zap.Error(err))
			continue
		}
		delivered = true
	}

	if delivered {
		if err := d.ledger.MarkNotified(ctx, detected.ID, domain.ChannelPush, time.Now().UTC()); err != nil {
			d.logger.Warn("failed to record push outcome", zap.String("slot_id", detected.ID.String()), zap.Error(err))
		}
	}
	return delivered
}

func bookingURL(club domain.Club) string {
	if club.Slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.doinsport.club/home", club.Slug)
}
