package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"gorm.io/gorm"
)

type PushTokenRepository struct {
	db *gorm.DB
}

func NewPushTokenRepository(db *gorm.DB) *PushTokenRepository {
	return &PushTokenRepository{db: db}
}

func (r *PushTokenRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.PushToken, error) {
	var models []pushTokenModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at").
		Find(&models).Error; err != nil {
		return nil, err
	}
	tokens := make([]domain.PushToken, 0, len(models))
	for _, model := range models {
		tokens = append(tokens, domain.PushToken{
			ID:         model.ID,
			UserID:     model.UserID,
			Token:      model.Token,
			DeviceType: model.DeviceType,
			Active:     model.Active,
			CreatedAt:  model.CreatedAt,
		})
	}
	return tokens, nil
}
