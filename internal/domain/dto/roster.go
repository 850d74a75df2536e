package dto

// Geo is a verified device location handed in by the caller at join time.
// The core never acquires locations itself.
type Geo struct {
	Lat float64
	Lng float64
}

// EventRoster is the organizer's projection of an event's entrants,
// bucketed by status. Waiting preserves insertion order.
type EventRoster struct {
	Waiting   []string
	Selected  []string
	Cancelled []string
	Final     []string
}

// DrawResult describes one completed lottery run.
type DrawResult struct {
	DrawID  string
	Winners []string
	Losers  []string
}
