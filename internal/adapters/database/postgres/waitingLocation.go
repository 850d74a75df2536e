package postgres

import (
	"context"

	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"gorm.io/gorm"
)

type WaitingLocationStorage struct {
	db *gorm.DB
}

func NewWaitingLocationStorage(db *gorm.DB) *WaitingLocationStorage {
	return &WaitingLocationStorage{
		db: db,
	}
}

func (s *WaitingLocationStorage) Create(ctx context.Context, loc *entity.WaitingLocation) error {
	return s.db.WithContext(ctx).Create(loc).Error
}

// Delete removes the entrant's location record; missing records are a no-op.
func (s *WaitingLocationStorage) Delete(ctx context.Context, eventID string, email string) error {
	return s.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		Delete(&entity.WaitingLocation{}).Error
}

func (s *WaitingLocationStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.WaitingLocation, error) {
	var locations []entity.WaitingLocation
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&locations).Error
	return locations, err
}
