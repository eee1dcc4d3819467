package statemachine

import (
	"errors"

	"pho-paradise-api/models"
)

// progression is the authoritative state machine definition: one forward
// edge per state, delivered is terminal. Both the manual status update
// and the auto-progression sweep consult this table; only the admin
// override is allowed to bypass it.
var progression = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:   models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusDelivered,
}

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivered,
}

// Next returns the single allowed successor of a status. The second
// return is false for the terminal state.
func Next(status models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := progression[status]
	return next, ok
}

// IsTerminal reports whether a status has no outgoing transition.
func IsTerminal(status models.OrderStatus) bool {
	_, ok := progression[status]
	return !ok
}

// Valid reports whether the given value is a known order status.
func Valid(status models.OrderStatus) bool {
	for _, s := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanAdvance checks a requested transition against the table. Staying on
// the current status is allowed as an idempotent no-op.
func CanAdvance(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	next, ok := progression[from]
	if !ok {
		return errors.New("invalid transition: " + string(from) + " is a terminal state")
	}
	if to != next {
		return errors.New(
			"invalid transition: " + string(from) + " → " + string(to) +
				". The only allowed next status is " + string(next),
		)
	}
	return nil
}
