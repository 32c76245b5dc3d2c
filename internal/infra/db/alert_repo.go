package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) ListActive(ctx context.Context, asOf time.Time) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND target_date >= ?", true, dateOnly(asOf)).
		Order("created_at").
		Find(&models).Error; err != nil {
		return nil, err
	}
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, mapAlertToDomain(model))
	}
	return alerts, nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	var model alertModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	alert := mapAlertToDomain(model)
	return &alert, nil
}

// All mutations below update only the columns they name. The boost purchase
// flow writes the same rows concurrently, so full-record saves are off
// limits here.

func (r *AlertRepository) MarkChecked(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"last_checked_at": at,
	})
}

func (r *AlertRepository) EstablishBaseline(ctx context.Context, id uuid.UUID) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"baseline_done": true,
	})
}

func (r *AlertRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"active":           false,
		"boost_active":     false,
		"boost_expires_at": nil,
	})
}

func (r *AlertRepository) ExpireBoosts(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&alertModel{}).
		Where("boost_active = ? AND boost_expires_at <= ?", true, now).
		Updates(map[string]interface{}{
			"boost_active":     false,
			"boost_expires_at": nil,
			"updated_at":       now,
		})
	return result.RowsAffected, result.Error
}

func (r *AlertRepository) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&alertModel{}).
		Where("active = ? AND target_date < ?", true, dateOnly(before)).
		Updates(map[string]interface{}{
			"active":           false,
			"boost_active":     false,
			"boost_expires_at": nil,
			"updated_at":       time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *AlertRepository) updateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&alertModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapAlertToDomain(model alertModel) domain.Alert {
	return domain.Alert{
		ID:                   model.ID,
		UserID:               model.UserID,
		ClubID:               model.ClubID,
		TargetDate:           model.TargetDate,
		TimeFrom:             model.TimeFrom,
		TimeTo:               model.TimeTo,
		IndoorOnly:           model.IndoorOnly,
		Active:               model.Active,
		CheckIntervalMinutes: model.CheckIntervalMinutes,
		BaselineDone:         model.BaselineDone,
		LastCheckedAt:        model.LastCheckedAt,
		BoostActive:          model.BoostActive,
		BoostExpiresAt:       model.BoostExpiresAt,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}
