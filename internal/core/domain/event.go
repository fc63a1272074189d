package domain

import "time"

// TransitionEvent is the audit record appended after every successful
// lifecycle change, including creation.
type TransitionEvent struct {
	ShipmentID string
	Status     ShipmentStatus
	Actor      string
	OccurredAt time.Time
}
