package generate

import (
	"context"

	"ecomcopy-app/internal/domain/generations"

	"gorm.io/gorm"
)

// RecordStore persists the audit trail of successful generations.
type RecordStore interface {
	Create(ctx context.Context, rec *generations.Generation) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]generations.Generation, error)
}

type GormRecords struct {
	db *gorm.DB
}

func NewGormRecords(db *gorm.DB) *GormRecords {
	return &GormRecords{db: db}
}

func (s *GormRecords) Create(ctx context.Context, rec *generations.Generation) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *GormRecords) ListByUser(ctx context.Context, userID uint, limit int) ([]generations.Generation, error) {
	var recs []generations.Generation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
