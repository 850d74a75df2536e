package service

import (
	"context"
	"testing"

	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The full entrant lifecycle: five entrants join, two are drawn, one
// declines and the head of the waiting queue takes the vacated slot.
func TestEntrantLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addEvent(entity.Event{ID: "ev1", Title: "Pottery class", OrganizerEmail: organizer})

	roster := newRosterService(store)
	lottery := newLotteryService(store, fixedSampler{indices: []int{0, 2, 1, 3, 4}})
	decisions := newDecisionService(store, nil)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"} {
		_, err := roster.Join(ctx, "ev1", email, nil)
		require.NoError(t, err)
	}

	// Draw picks a and c; b, d, e remain waiting in order.
	result, err := lottery.Draw(ctx, "ev1", 2, organizer)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x.com", "c@x.com"}, result.Winners)

	view, err := roster.Roster(ctx, "ev1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.com", "d@x.com", "e@x.com"}, view.Waiting)
	assert.ElementsMatch(t, []string{"a@x.com", "c@x.com"}, view.Selected)

	// c accepts, a declines; b is promoted in FIFO order.
	require.NoError(t, decisions.Accept(ctx, "ev1", "c@x.com"))
	require.NoError(t, decisions.Decline(ctx, "ev1", "a@x.com"))

	view, err = roster.Roster(ctx, "ev1")
	require.NoError(t, err)
	assert.Equal(t, []string{"d@x.com", "e@x.com"}, view.Waiting)
	assert.Equal(t, []string{"b@x.com"}, view.Selected)
	assert.Equal(t, []string{"a@x.com"}, view.Cancelled)
	assert.Equal(t, []string{"c@x.com"}, view.Final)

	status, err := roster.StatusOf(ctx, "ev1", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSelected, status)

	// b accepts the replacement offer and is enrolled.
	require.NoError(t, decisions.Accept(ctx, "ev1", "b@x.com"))
	status, err = roster.StatusOf(ctx, "ev1", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFinal, status)
}
