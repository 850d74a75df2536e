package errorz

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrCapacityExceeded     = errors.New("waiting list is full")
	ErrAlreadyJoined        = errors.New("entrant already on the waiting list")
	ErrNotWaiting           = errors.New("entrant is not on the waiting list")
	ErrLocationUnavailable  = errors.New("verified location required to join")
	ErrInsufficientEntrants = errors.New("not enough eligible entrants for the draw")
	ErrNotSelected          = errors.New("entrant is not selected")
	ErrNotDismissible       = errors.New("notification cannot be dismissed")
	ErrInvalidEntrantID     = errors.New("invalid entrant identifier")
	ErrInvalidSampleSize    = errors.New("sample size must be positive")
	ErrInvalidEvent         = errors.New("invalid event fields")
	ErrForbidden            = errors.New("forbidden")
)
