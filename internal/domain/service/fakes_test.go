package service

import (
	"context"
	"sync"
	"time"

	"github.com/mshevelin/event-lottery/internal/domain/common/errorz"
	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"github.com/mshevelin/event-lottery/pkg/logger/types"
	"go.uber.org/zap"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

// memStore is an in-memory stand-in for the postgres storages, honoring
// the same contracts (insertion order, guarded status transitions,
// capacity-checked joins).
type memStore struct {
	mu sync.Mutex

	events    map[string]*entity.Event
	entrants  []*entity.Entrant
	nextID    uint
	locations map[string]entity.WaitingLocation

	notifications map[string]*entity.Notification
	logs          []entity.NotificationLog
	draws         []entity.Draw

	published []publishedRecord
}

type publishedRecord struct {
	recipient      string
	notificationID string
}

func newMemStore() *memStore {
	return &memStore{
		events:        make(map[string]*entity.Event),
		locations:     make(map[string]entity.WaitingLocation),
		notifications: make(map[string]*entity.Notification),
	}
}

func locKey(eventID, email string) string { return eventID + "|" + email }

func (m *memStore) addEvent(event entity.Event) *entity.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := event
	m.events[e.ID] = &e
	return &e
}

// --- event storage ---

func (m *memStore) Get(ctx context.Context, id string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, errorz.ErrEventNotFound
	}
	return event, nil
}

// --- entrant storage ---

func (m *memStore) JoinWaiting(ctx context.Context, eventID string, email string) (*entity.Entrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[eventID]
	if !ok {
		return nil, errorz.ErrEventNotFound
	}

	var waiting int64
	for _, e := range m.entrants {
		if e.EventID != eventID || e.Status != entity.StatusWaiting {
			continue
		}
		if e.Email == email {
			return nil, errorz.ErrAlreadyJoined
		}
		waiting++
	}
	if !event.HasCapacityFor(waiting) {
		return nil, errorz.ErrCapacityExceeded
	}

	m.nextID++
	entrant := &entity.Entrant{
		ID:       m.nextID,
		EventID:  eventID,
		Email:    email,
		Status:   entity.StatusWaiting,
		JoinedAt: time.Now().UTC(),
	}
	m.entrants = append(m.entrants, entrant)
	return entrant, nil
}

func (m *memStore) GetEntrant(ctx context.Context, eventID string, email string) (*entity.Entrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entrants {
		if e.EventID == eventID && e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateStatus(ctx context.Context, eventID string, email string, from, to entity.EntrantStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entrants {
		if e.EventID == eventID && e.Email == email && e.Status == from {
			e.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Delete(ctx context.Context, eventID string, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entrants {
		if e.EventID == eventID && e.Email == email && e.Status == entity.StatusWaiting {
			m.entrants = append(m.entrants[:i], m.entrants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) ([]entity.Entrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Entrant
	for _, e := range m.entrants {
		if e.EventID == eventID && e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memStore) CountByStatus(ctx context.Context, eventID string, status entity.EntrantStatus) (int64, error) {
	entrants, _ := m.ListByStatus(ctx, eventID, status)
	return int64(len(entrants)), nil
}

func (m *memStore) FirstWaiting(ctx context.Context, eventID string) (*entity.Entrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entrants {
		if e.EventID == eventID && e.Status == entity.StatusWaiting {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

// --- waiting location storage ---

func (m *memStore) CreateLocation(ctx context.Context, loc *entity.WaitingLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[locKey(loc.EventID, loc.Email)] = *loc
	return nil
}

func (m *memStore) DeleteLocation(ctx context.Context, eventID string, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, locKey(eventID, email))
	return nil
}

// --- notification storage ---

func (m *memStore) CreateNotification(ctx context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *n
	m.notifications[n.ID] = &copied
	return nil
}

func (m *memStore) GetNotification(ctx context.Context, id string) (*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, nil
	}
	copied := *n
	return &copied, nil
}

func (m *memStore) DeleteNotification(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notifications, id)
	return nil
}

func (m *memStore) DeleteConsumed(ctx context.Context, eventID string, recipient string, types []entity.NotificationType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.EventID != eventID || n.Recipient != recipient {
			continue
		}
		for _, t := range types {
			if n.Type == t {
				delete(m.notifications, id)
				break
			}
		}
	}
	return nil
}

func (m *memStore) ListByRecipient(ctx context.Context, recipient string) ([]entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Notification
	for _, n := range m.notifications {
		if n.Recipient == recipient {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memStore) CountPending(ctx context.Context, recipient string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.Recipient == recipient && n.Status == entity.NotificationStatusPending {
			count++
		}
	}
	return count, nil
}

func (m *memStore) MarkRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		n.Status = entity.NotificationStatusRead
	}
	return nil
}

// --- notification log storage ---

func (m *memStore) CreateLog(ctx context.Context, log *entity.NotificationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, *log)
	return nil
}

// --- draw storage ---

func (m *memStore) CreateDraw(ctx context.Context, draw *entity.Draw) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draws = append(m.draws, *draw)
	return nil
}

func (m *memStore) GetByEventID(ctx context.Context, eventID string) ([]entity.Draw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Draw
	for _, d := range m.draws {
		if d.EventID == eventID {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- feed publisher ---

func (m *memStore) Publish(ctx context.Context, recipient string, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, publishedRecord{recipient: recipient, notificationID: notificationID})
	return nil
}

func (m *memStore) notificationsByType(t entity.NotificationType) []entity.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Notification
	for _, n := range m.notifications {
		if n.Type == t {
			out = append(out, *n)
		}
	}
	return out
}

// storage view adapters: the services take narrow interfaces with
// overlapping method names, so the fake exposes per-concern views.

type entrantView struct{ *memStore }

func (v entrantView) Get(ctx context.Context, eventID string, email string) (*entity.Entrant, error) {
	return v.GetEntrant(ctx, eventID, email)
}

type locationView struct{ *memStore }

func (v locationView) Create(ctx context.Context, loc *entity.WaitingLocation) error {
	return v.CreateLocation(ctx, loc)
}

func (v locationView) Delete(ctx context.Context, eventID string, email string) error {
	return v.DeleteLocation(ctx, eventID, email)
}

type notificationView struct{ *memStore }

func (v notificationView) Create(ctx context.Context, n *entity.Notification) error {
	return v.CreateNotification(ctx, n)
}

func (v notificationView) Get(ctx context.Context, id string) (*entity.Notification, error) {
	return v.GetNotification(ctx, id)
}

func (v notificationView) Delete(ctx context.Context, id string) error {
	return v.DeleteNotification(ctx, id)
}

type logView struct{ *memStore }

func (v logView) Create(ctx context.Context, log *entity.NotificationLog) error {
	return v.CreateLog(ctx, log)
}

type drawView struct{ *memStore }

func (v drawView) Create(ctx context.Context, draw *entity.Draw) error {
	return v.CreateDraw(ctx, draw)
}

// fixedSampler returns a preset permutation prefix, making draws
// deterministic in tests.
type fixedSampler struct {
	indices []int
}

func (s fixedSampler) Sample(n, k int) ([]int, error) {
	return s.indices[:k], nil
}

// chanSubscriber feeds a prepared id stream to NotifyService.Listen.
type chanSubscriber struct {
	ids []string
}

func (s chanSubscriber) Subscribe(ctx context.Context, recipient string) (<-chan string, error) {
	out := make(chan string, len(s.ids))
	for _, id := range s.ids {
		out <- id
	}
	close(out)
	return out, nil
}

// memSeen is an in-memory seen store.
type memSeen struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemSeen() *memSeen {
	return &memSeen{seen: make(map[string]bool)}
}

func (m *memSeen) MarkSeen(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[id] {
		return false, nil
	}
	m.seen[id] = true
	return true, nil
}
