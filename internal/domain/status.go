package domain

import "strings"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s Status) bool {
	return s.Valid() && len(transitions[s]) == 0
}

// ParseStatus accepts any letter case.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("status", "unknown status "+raw)
	}
	return s, nil
}

// ValidateTransition checks current -> requested against the transition table.
// It never mutates anything; callers apply the new status only when it returns nil.
func ValidateTransition(current, requested Status) error {
	for _, next := range transitions[current] {
		if next == requested {
			return nil
		}
	}
	return &InvalidTransitionError{From: current, To: requested}
}
