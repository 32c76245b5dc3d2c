package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"gorm.io/gorm"
)

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	var model clubModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Club{
		ID:          model.ID,
		DoinsportID: model.DoinsportID,
		Name:        model.Name,
		Slug:        model.Slug,
		City:        model.City,
		Enabled:     model.Enabled,
		CreatedAt:   model.CreatedAt,
	}, nil
}
