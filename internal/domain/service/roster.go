package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mshevelin/event-lottery/internal/domain/common/errorz"
	"github.com/mshevelin/event-lottery/internal/domain/dto"
	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"github.com/mshevelin/event-lottery/internal/domain/utils/validator"
	"github.com/mshevelin/event-lottery/pkg/logger/types"
)

type RosterEntrantStorage interface {
	JoinWaiting(ctx context.Context, eventID string, email string) (*entity.Entrant, error)
	Get(ctx context.Context, eventID string, email string) (*entity.Entrant, error)
	Delete(ctx context.Context, eventID string, email string) (bool, error)
	ListByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) ([]entity.Entrant, error)
	CountByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) (int64, error)
}

type rosterEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type rosterLocationStorage interface {
	Create(ctx context.Context, loc *entity.WaitingLocation) error
	Delete(ctx context.Context, eventID string, email string) error
}

// RosterService enforces the waiting-list state machine for one event:
// who may join, who may leave, and what status an entrant holds.
type RosterService struct {
	logger *types.Logger

	entrantStorage  RosterEntrantStorage
	eventStorage    rosterEventStorage
	locationStorage rosterLocationStorage
}

func NewRosterService(
	logger *types.Logger,
	entrantStorage RosterEntrantStorage,
	eventStorage rosterEventStorage,
	locationStorage rosterLocationStorage,
) *RosterService {
	return &RosterService{
		logger: logger,

		entrantStorage:  entrantStorage,
		eventStorage:    eventStorage,
		locationStorage: locationStorage,
	}
}

// Join puts an entrant on the event's waiting list. Events that require
// a verified location reject joins without one; the location record is
// written before the roster append, so a failed append can leave an
// orphan record, which Leave cleans up.
func (s *RosterService) Join(ctx context.Context, eventID string, entrantID string, loc *dto.Geo) (*entity.Entrant, error) {
	if !validator.EntrantID(entrantID) {
		return nil, errorz.ErrInvalidEntrantID
	}

	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.GeoRequired {
		if loc == nil {
			return nil, errorz.ErrLocationUnavailable
		}
		err = s.locationStorage.Create(ctx, &entity.WaitingLocation{
			ID:        uuid.New().String(),
			EventID:   eventID,
			Email:     entrantID,
			Lat:       loc.Lat,
			Lng:       loc.Lng,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	}

	entrant, err := s.entrantStorage.JoinWaiting(ctx, eventID, entrantID)
	if err != nil {
		return nil, err
	}

	s.logger.Debugf("entrant %s joined waiting list of event %s", entrantID, eventID)
	return entrant, nil
}

// Leave removes an entrant from the waiting list only. The location
// side-record is removed as well, including orphans from failed joins.
func (s *RosterService) Leave(ctx context.Context, eventID string, entrantID string) error {
	removed, err := s.entrantStorage.Delete(ctx, eventID, entrantID)
	if err != nil {
		return err
	}

	if errLoc := s.locationStorage.Delete(ctx, eventID, entrantID); errLoc != nil {
		s.logger.Errorf("failed to remove waiting location for %s on event %s: %v", entrantID, eventID, errLoc)
	}

	if !removed {
		return errorz.ErrNotWaiting
	}
	return nil
}

// StatusOf is a pure read of an entrant's standing within the event.
func (s *RosterService) StatusOf(ctx context.Context, eventID string, entrantID string) (entity.EntrantStatus, error) {
	entrant, err := s.entrantStorage.Get(ctx, eventID, entrantID)
	if err != nil {
		return "", err
	}
	if entrant == nil {
		return entity.StatusNotJoined, nil
	}
	return entrant.Status, nil
}

// Roster returns the organizer's bucketed view of the event's entrants.
func (s *RosterService) Roster(ctx context.Context, eventID string) (*dto.EventRoster, error) {
	roster := &dto.EventRoster{}

	buckets := []struct {
		status entity.EntrantStatus
		dest   *[]string
	}{
		{entity.StatusWaiting, &roster.Waiting},
		{entity.StatusSelected, &roster.Selected},
		{entity.StatusCancelled, &roster.Cancelled},
		{entity.StatusFinal, &roster.Final},
	}

	for _, b := range buckets {
		entrants, err := s.entrantStorage.ListByStatus(ctx, eventID, b.status)
		if err != nil {
			return nil, err
		}
		for _, e := range entrants {
			*b.dest = append(*b.dest, e.Email)
		}
	}

	return roster, nil
}

// WaitingCount returns the current waiting list size.
func (s *RosterService) WaitingCount(ctx context.Context, eventID string) (int64, error) {
	return s.entrantStorage.CountByStatus(ctx, eventID, entity.StatusWaiting)
}
