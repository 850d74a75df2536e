package postgres

import (
	"context"

	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"gorm.io/gorm"
)

type DrawStorage struct {
	db *gorm.DB
}

func NewDrawStorage(db *gorm.DB) *DrawStorage {
	return &DrawStorage{
		db: db,
	}
}

func (s *DrawStorage) Create(ctx context.Context, draw *entity.Draw) error {
	return s.db.WithContext(ctx).Create(draw).Error
}

// GetByEventID returns all lottery runs for an event, oldest first.
func (s *DrawStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.Draw, error) {
	var draws []entity.Draw
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&draws).Error
	return draws, err
}
