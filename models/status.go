package models

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for any status change the workflow does
// not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// Order statuses. An order only ever moves forward:
// pending -> preparing -> completed (terminal).
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusCompleted = "completed"
)

// ActiveStatuses are the statuses served by the live barista feed.
var ActiveStatuses = []string{StatusPending, StatusPreparing}

var validTransitions = map[string]string{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusCompleted,
}

// CanTransition reports whether an order may move from one status to the
// next. No transition skips a state and no backward transition exists.
func CanTransition(from, to string) error {
	if validTransitions[from] == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// IsActiveStatus reports whether the status belongs in the active feed.
func IsActiveStatus(status string) bool {
	return status == StatusPending || status == StatusPreparing
}
