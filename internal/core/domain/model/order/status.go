package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	created ──┬──> in_progress ──┬──> completed
//	          │                  │
//	          └──> cancelled <───┘
//
// completed and cancelled are terminal: no outgoing transitions, including
// self-transitions. Status is a value object that validates transitions and
// provides the wire string representation used by the API and the database.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first placed.
	Created

	// InProgress indicates the order is being fulfilled.
	InProgress

	// Completed indicates the order was fulfilled. Terminal.
	Completed

	// Cancelled indicates the order was cancelled by its owner. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire strings.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "created",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidTransitions is the transition table, kept as data rather than
// branching logic so the rule set can be audited and tested by enumerating
// (from, to) pairs, and extended with a one-line change.
func getValidTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:    {InProgress, Cancelled},
		InProgress: {Completed, Cancelled},
		Completed:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses a wire string ("created", "in_progress",
// "completed", "cancelled") into a Status. Any other input is rejected,
// which is how unrecognized status values in API requests are caught.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("'%s' is not a recognized status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire string of the status, or "unknown" for invalid values.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllowedTransitions returns the set of statuses reachable from s.
// Terminal and invalid statuses return an empty set.
func (s Status) AllowedTransitions() []Status {
	return getValidTransitions()[s]
}

// AllowedTransitionStrings returns the wire strings of the statuses reachable
// from s, used in transition error diagnostics.
func (s Status) AllowedTransitionStrings() []string {
	allowed := s.AllowedTransitions()
	strings := make([]string, 0, len(allowed))
	for _, target := range allowed {
		strings = append(strings, target.String())
	}
	return strings
}

// CanTransitionTo reports whether target is in the allowed-target set of s.
// Self-transitions are never allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range s.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(s.AllowedTransitions()) == 0
}

// TransitionTo validates the transition from s to target against the table.
//
// Returns:
//   - (target, nil) when the transition is allowed
//   - (0, *errs.InvalidStatusTransitionError) otherwise, carrying the current
//     status and the allowed set for diagnostics
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidStatusTransitionError(s.String(), target.String(), s.AllowedTransitionStrings())
	}

	return target, nil
}
