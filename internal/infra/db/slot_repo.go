package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"gorm.io/gorm"
)

type SlotLedger struct {
	db *gorm.DB
}

func NewSlotLedger(db *gorm.DB) *SlotLedger {
	return &SlotLedger{db: db}
}

func (r *SlotLedger) Exists(ctx context.Context, alertID, playgroundID uuid.UUID, date time.Time, startTime string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&detectedSlotModel{}).
		Where("alert_id = ? AND playground_id = ? AND date = ? AND start_time = ?",
			alertID, playgroundID, dateOnly(date), startTime).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SlotLedger) Insert(ctx context.Context, slot *domain.DetectedSlot) error {
	model := mapDetectedSlotToModel(*slot)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateSlot
		}
		return err
	}
	slot.ID = model.ID
	slot.DetectedAt = model.DetectedAt
	return nil
}

func (r *SlotLedger) MarkNotified(ctx context.Context, id uuid.UUID, channel domain.NotificationChannel, at time.Time) error {
	fields := map[string]interface{}{}
	switch channel {
	case domain.ChannelEmail:
		fields["email_sent"] = true
		fields["email_sent_at"] = at
	case domain.ChannelPush:
		fields["push_sent"] = true
		fields["push_sent_at"] = at
	default:
		return errors.New("unknown notification channel")
	}

	result := r.db.WithContext(ctx).Model(&detectedSlotModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SlotLedger) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date < ?", dateOnly(date)).
		Delete(&detectedSlotModel{})
	return result.RowsAffected, result.Error
}

func mapDetectedSlotToModel(slot domain.DetectedSlot) detectedSlotModel {
	return detectedSlotModel{
		ID:              slot.ID,
		AlertID:         slot.AlertID,
		ClubID:          slot.ClubID,
		PlaygroundID:    slot.PlaygroundID,
		PlaygroundName:  slot.PlaygroundName,
		Date:            dateOnly(slot.Date),
		StartTime:       slot.StartTime,
		DurationMinutes: slot.DurationMinutes,
		PriceTotal:      slot.PriceTotal,
		Indoor:          slot.Indoor,
		EmailSent:       slot.EmailSent,
		EmailSentAt:     slot.EmailSentAt,
		PushSent:        slot.PushSent,
		PushSentAt:      slot.PushSentAt,
		DetectedAt:      slot.DetectedAt,
	}
}
