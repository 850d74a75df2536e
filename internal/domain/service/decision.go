package service

import (
	"context"

	"github.com/mshevelin/event-lottery/internal/domain/common/errorz"
	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"github.com/mshevelin/event-lottery/pkg/logger/types"
)

type decisionEntrantStorage interface {
	UpdateStatus(ctx context.Context, eventID string, email string, from, to entity.EntrantStatus) (bool, error)
	FirstWaiting(ctx context.Context, eventID string) (*entity.Entrant, error)
}

type decisionEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type decisionNotificationStorage interface {
	DeleteConsumed(ctx context.Context, eventID string, recipient string, types []entity.NotificationType) error
}

type noticeMailer interface {
	SendNotice(to string, subject string, body string)
}

// offerTypes are the inbox records an accept/decline consumes.
var offerTypes = []entity.NotificationType{
	entity.NotificationTypeWinnerSelected,
	entity.NotificationTypeReplacementOffer,
}

// DecisionService applies a selected entrant's accept or decline and, on
// decline, promotes the next waiting entrant into the vacated slot.
type DecisionService struct {
	logger *types.Logger

	entrantStorage      decisionEntrantStorage
	eventStorage        decisionEventStorage
	notificationStorage decisionNotificationStorage
	dispatcher          dispatcher
	mailer              noticeMailer
}

func NewDecisionService(
	logger *types.Logger,
	entrantStorage decisionEntrantStorage,
	eventStorage decisionEventStorage,
	notificationStorage decisionNotificationStorage,
	dispatcher dispatcher,
	mailer noticeMailer,
) *DecisionService {
	return &DecisionService{
		logger: logger,

		entrantStorage:      entrantStorage,
		eventStorage:        eventStorage,
		notificationStorage: notificationStorage,
		dispatcher:          dispatcher,
		mailer:              mailer,
	}
}

// Accept moves the entrant from selected to final. The spot is filled,
// so no replacement runs. A repeat call fails with ErrNotSelected rather
// than applying twice.
func (s *DecisionService) Accept(ctx context.Context, eventID string, entrantID string) error {
	moved, err := s.entrantStorage.UpdateStatus(ctx, eventID, entrantID, entity.StatusSelected, entity.StatusFinal)
	if err != nil {
		return err
	}
	if !moved {
		return errorz.ErrNotSelected
	}

	s.consumeOffer(ctx, eventID, entrantID)
	s.logger.Infof("entrant %s accepted their spot for event %s", entrantID, eventID)
	return nil
}

// Decline moves the entrant from selected to cancelled, notifies the
// organizer, and promotes the head of the waiting queue into the
// vacated slot.
func (s *DecisionService) Decline(ctx context.Context, eventID string, entrantID string) error {
	moved, err := s.entrantStorage.UpdateStatus(ctx, eventID, entrantID, entity.StatusSelected, entity.StatusCancelled)
	if err != nil {
		return err
	}
	if !moved {
		return errorz.ErrNotSelected
	}

	s.consumeOffer(ctx, eventID, entrantID)

	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return err
	}

	s.notifyOrganizer(ctx, event,
		entity.NotificationTypeEntrantDeclined,
		"Entrant declined",
		entrantID+" declined their spot for "+event.Title+".",
	)

	return s.promoteReplacement(ctx, event)
}

// promoteReplacement fills one vacated slot from the head of the waiting
// queue. It never re-runs the lottery: exactly one entrant is promoted
// per decline, in insertion order. An empty queue promotes nobody.
func (s *DecisionService) promoteReplacement(ctx context.Context, event *entity.Event) error {
	head, err := s.entrantStorage.FirstWaiting(ctx, event.ID)
	if err != nil {
		return err
	}
	if head == nil {
		s.logger.Debugf("no waiting entrants to promote for event %s", event.ID)
		return nil
	}

	moved, err := s.entrantStorage.UpdateStatus(ctx, event.ID, head.Email, entity.StatusWaiting, entity.StatusSelected)
	if err != nil {
		return err
	}
	if !moved {
		s.logger.Warnf("replacement %s left event %s before promotion", head.Email, event.ID)
		return nil
	}

	_, err = s.dispatcher.Dispatch(ctx,
		entity.NotificationTypeReplacementOffer, head.Email, event.ID,
		"A spot opened up",
		"A spot for "+event.Title+" opened up and you are next in line. Accept or decline.",
	)
	if err != nil {
		s.logger.Errorf("failed to notify replacement %s for event %s: %v", head.Email, event.ID, err)
	}

	s.notifyOrganizer(ctx, event,
		entity.NotificationTypeCustomMessage,
		"Replacement promoted",
		head.Email+" was promoted from the waiting list of "+event.Title+".",
	)

	return nil
}

// consumeOffer deletes the actionable inbox record the decision acted
// upon. Failure to delete never fails the decision itself.
func (s *DecisionService) consumeOffer(ctx context.Context, eventID string, entrantID string) {
	if err := s.notificationStorage.DeleteConsumed(ctx, eventID, entrantID, offerTypes); err != nil {
		s.logger.Errorf("failed to consume offer notification for %s on event %s: %v", entrantID, eventID, err)
	}
}

func (s *DecisionService) notifyOrganizer(ctx context.Context, event *entity.Event, t entity.NotificationType, title string, message string) {
	_, err := s.dispatcher.Dispatch(ctx, t, event.OrganizerEmail, event.ID, title, message)
	if err != nil {
		s.logger.Errorf("failed to notify organizer of event %s: %v", event.ID, err)
	}

	if s.mailer != nil {
		s.mailer.SendNotice(event.OrganizerEmail, title, message)
	}
}
