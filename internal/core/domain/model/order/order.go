package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root for the order lifecycle. It owns the one set of
// real invariants in the system:
//
//   - id and ownerID are immutable
//   - items and totalAmount are write-once (set at creation, never mutated)
//   - status only moves along the transition table in status.go
//   - completed and cancelled are terminal
//   - updatedAt is refreshed on every successful status change
//
// Orders are never deleted: cancellation is a terminal status, not a removal.
// Instances can only be created through NewOrder (fresh orders) or
// RestoreOrder (reconstruction from persistence).
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// ownerID identifies the user who placed the order
	ownerID kernel.UUID

	// items is the write-once sequence of order lines
	items []Item

	// totalAmount is the caller-supplied order total
	totalAmount float64

	// status is the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Created status with validation.
//
// Parameters:
//   - id: unique identifier for the order (must be a constructed UUID)
//   - ownerID: identifier of the placing user
//   - items: at least one validated Item
//   - totalAmount: must be greater than 0
//   - now: creation timestamp (createdAt and updatedAt start equal)
//
// Returns the order, or a joined validation error if any parameter is invalid.
func NewOrder(id, ownerID kernel.UUID, items []Item, totalAmount float64, now time.Time) (*Order, error) {
	order := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setItems(items),
		order.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. In addition to the
// creation-time validations it checks that the stored status is a valid value.
func RestoreOrder(
	id, ownerID kernel.UUID,
	items []Item,
	totalAmount float64,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setItems(items),
		order.setTotalAmount(totalAmount),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call it when reconstructing orders from persistence to
// prevent bypassing validation by direct struct instantiation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the identifier of the user who placed the order.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Items returns a copy of the order lines. The copy keeps the write-once
// invariant: callers cannot mutate the aggregate's items through the slice.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the caller-supplied order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last successful status change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to target if the transition table allows it,
// refreshing updatedAt. The operation is deliberately not idempotent:
// repeating a successful transition fails, because the current status has
// already moved past the original source state.
//
// Returns:
//   - nil on a successful transition
//   - *errs.ValueIsInvalidError if target is not a valid status value
//   - *errs.InvalidStatusTransitionError if the transition is not in the table
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Cancel moves the order to the terminal Cancelled status.
// Fails with *errs.CannotCancelError when the current status is already
// terminal; cancellation is only possible from created or in_progress.
func (o *Order) Cancel(now time.Time) error {
	if !o.status.CanTransitionTo(Cancelled) {
		return errs.NewCannotCancelError(o.status.String())
	}

	o.status = Cancelled
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotalAmount(totalAmount float64) error {
	if err := validateTotalAmount(totalAmount); err != nil {
		return err
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// validateTotalAmount is the single policy point for order total validation.
// The caller-supplied total is trusted as-is and not recomputed from item
// prices and quantities; tightening that policy later only touches this
// function, not its call sites.
func validateTotalAmount(totalAmount float64) error {
	if totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total_amount is invalid",
			fmt.Errorf("%v is not greater than 0", totalAmount),
		)
	}
	return nil
}
