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

type lotteryEntrantStorage interface {
	ListByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) ([]entity.Entrant, error)
	UpdateStatus(ctx context.Context, eventID string, email string, from, to entity.EntrantStatus) (bool, error)
}

type lotteryEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type lotteryDrawStorage interface {
	Create(ctx context.Context, draw *entity.Draw) error
	GetByEventID(ctx context.Context, eventID string) ([]entity.Draw, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, t entity.NotificationType, recipient string, eventID string, title string, message string) (*entity.Notification, error)
}

// LotteryService runs lottery draws: a uniform random sample of the
// eligible waiting pool becomes selected, the rest stay waiting and stay
// eligible for re-rolls.
type LotteryService struct {
	logger *types.Logger

	entrantStorage lotteryEntrantStorage
	eventStorage   lotteryEventStorage
	drawStorage    lotteryDrawStorage
	dispatcher     dispatcher
	sampler        Sampler
}

func NewLotteryService(
	logger *types.Logger,
	entrantStorage lotteryEntrantStorage,
	eventStorage lotteryEventStorage,
	drawStorage lotteryDrawStorage,
	dispatcher dispatcher,
	sampler Sampler,
) *LotteryService {
	return &LotteryService{
		logger: logger,

		entrantStorage: entrantStorage,
		eventStorage:   eventStorage,
		drawStorage:    drawStorage,
		dispatcher:     dispatcher,
		sampler:        sampler,
	}
}

// Draw selects n winners from the event's waiting list. n falls back to
// the event's configured sample size when zero. Only the organizer may
// draw. A failed draw leaves the roster untouched and notifies nobody.
func (s *LotteryService) Draw(ctx context.Context, eventID string, n int, caller string) (*dto.DrawResult, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if caller != event.OrganizerEmail {
		return nil, errorz.ErrForbidden
	}

	if n <= 0 {
		n = event.LotterySampleSize
	}
	if n <= 0 {
		return nil, errorz.ErrInvalidSampleSize
	}

	waiting, err := s.entrantStorage.ListByStatus(ctx, eventID, entity.StatusWaiting)
	if err != nil {
		return nil, err
	}

	// Malformed identifiers are skipped, not removed: they stay on the
	// waiting list untouched.
	var eligible []entity.Entrant
	for _, e := range waiting {
		if validator.EntrantID(e.Email) {
			eligible = append(eligible, e)
		}
	}

	if n > len(eligible) {
		return nil, errorz.ErrInsufficientEntrants
	}

	indices, err := s.sampler.Sample(len(eligible), n)
	if err != nil {
		return nil, err
	}

	picked := make(map[int]bool, n)
	for _, i := range indices {
		picked[i] = true
	}

	result := &dto.DrawResult{DrawID: uuid.New().String()}
	for i, e := range eligible {
		if !picked[i] {
			result.Losers = append(result.Losers, e.Email)
			continue
		}
		moved, errMove := s.entrantStorage.UpdateStatus(ctx, eventID, e.Email, entity.StatusWaiting, entity.StatusSelected)
		if errMove != nil {
			return nil, errMove
		}
		if !moved {
			// The entrant left between the read and the write; the slot
			// is simply not filled on this draw.
			s.logger.Warnf("draw %s: entrant %s left event %s mid-draw", result.DrawID, e.Email, eventID)
			continue
		}
		result.Winners = append(result.Winners, e.Email)
	}

	err = s.drawStorage.Create(ctx, &entity.Draw{
		ID:         result.DrawID,
		EventID:    eventID,
		SampleSize: n,
		Winners:    result.Winners,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Errorf("failed to record draw %s for event %s: %v", result.DrawID, eventID, err)
	}

	s.notifyDrawOutcome(ctx, event, result)

	return result, nil
}

// notifyDrawOutcome fans out the draw results. Each dispatch is
// best-effort: a failure for one recipient is logged and the rest
// proceed; the roster mutation is never rolled back.
func (s *LotteryService) notifyDrawOutcome(ctx context.Context, event *entity.Event, result *dto.DrawResult) {
	for _, winner := range result.Winners {
		_, err := s.dispatcher.Dispatch(ctx,
			entity.NotificationTypeWinnerSelected, winner, event.ID,
			"You won a spot",
			"You were selected for "+event.Title+". Accept or decline your spot.",
		)
		if err != nil {
			s.logger.Errorf("failed to notify winner %s for event %s: %v", winner, event.ID, err)
		}
	}

	for _, loser := range result.Losers {
		_, err := s.dispatcher.Dispatch(ctx,
			entity.NotificationTypeNotSelected, loser, event.ID,
			"Not selected",
			"You were not selected for "+event.Title+" this time. You remain on the waiting list.",
		)
		if err != nil {
			s.logger.Errorf("failed to notify entrant %s for event %s: %v", loser, event.ID, err)
		}
	}
}

// History returns all recorded draws for the event, oldest first.
func (s *LotteryService) History(ctx context.Context, eventID string) ([]entity.Draw, error) {
	return s.drawStorage.GetByEventID(ctx, eventID)
}
