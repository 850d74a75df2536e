package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/mshevelin/event-lottery/internal/domain/common/errorz"
	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntrantStorage struct {
	db *gorm.DB
}

func NewEntrantStorage(db *gorm.DB) *EntrantStorage {
	return &EntrantStorage{
		db: db,
	}
}

// JoinWaiting appends an entrant to the event's waiting list. The
// capacity check and the insert run in one transaction under a row lock
// on the event, so two concurrent joins near capacity cannot both pass.
func (s *EntrantStorage) JoinWaiting(ctx context.Context, eventID string, email string) (*entity.Entrant, error) {
	entrant := entity.Entrant{
		EventID:  eventID,
		Email:    email,
		Status:   entity.StatusWaiting,
		JoinedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event entity.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrEventNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&entity.Entrant{}).
			Where("event_id = ? AND email = ? AND status = ?", eventID, email, entity.StatusWaiting).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errorz.ErrAlreadyJoined
		}

		var waiting int64
		if err := tx.Model(&entity.Entrant{}).
			Where("event_id = ? AND status = ?", eventID, entity.StatusWaiting).
			Count(&waiting).Error; err != nil {
			return err
		}
		if !event.HasCapacityFor(waiting) {
			return errorz.ErrCapacityExceeded
		}

		return tx.Create(&entrant).Error
	})
	if err != nil {
		return nil, err
	}

	return &entrant, nil
}

// Get returns the entrant's row for one event, or nil when the entrant
// never joined.
func (s *EntrantStorage) Get(ctx context.Context, eventID string, email string) (*entity.Entrant, error) {
	var entrant entity.Entrant
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&entrant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entrant, nil
}

// UpdateStatus moves an entrant between status buckets. The expected
// current status guards against double transitions: zero rows affected
// means someone else moved the entrant first.
func (s *EntrantStorage) UpdateStatus(ctx context.Context, eventID string, email string, from, to entity.EntrantStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&entity.Entrant{}).
		Where("event_id = ? AND email = ? AND status = ?", eventID, email, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

// Delete removes an entrant's row entirely (used by Leave).
func (s *EntrantStorage) Delete(ctx context.Context, eventID string, email string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("event_id = ? AND email = ? AND status = ?", eventID, email, entity.StatusWaiting).
		Delete(&entity.Entrant{})
	return res.RowsAffected > 0, res.Error
}

// ListByStatus returns entrants of one bucket in insertion order, which
// makes FIFO promotion deterministic.
func (s *EntrantStorage) ListByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) ([]entity.Entrant, error) {
	var entrants []entity.Entrant
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, status).
		Order("id").
		Find(&entrants).Error
	return entrants, err
}

// CountByStatus is a function that counts entrants of one bucket.
func (s *EntrantStorage) CountByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Entrant{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

// FirstWaiting returns the head of the waiting queue, or nil when the
// queue is empty.
func (s *EntrantStorage) FirstWaiting(ctx context.Context, eventID string) (*entity.Entrant, error) {
	var entrant entity.Entrant
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, entity.StatusWaiting).
		Order("id").
		First(&entrant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entrant, nil
}
