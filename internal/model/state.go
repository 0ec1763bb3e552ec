package model

import "fmt"

// State is the bucket used to list bookings for a booker or an owner.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ErrUnknownState is the message reported for any token outside the closed set.
const ErrUnknownState = "Unknown state: UNSUPPORTED_STATUS"

// ParseState maps a raw token onto one of the six buckets.
func ParseState(raw string) (State, error) {
	switch s := State(raw); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", fmt.Errorf("%s", ErrUnknownState)
	}
}
