// Package services provides domain services that implement business rules
// spanning multiple aggregates. AccessPolicy holds the authorization rules
// applied to every order operation: pure functions over the caller and the
// record owner with no network or database dependency, so the rule set is
// independently testable and auditable.
package services

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// ErrCallerIsNotConstructed is returned when a Caller was not created through
// the NewCaller constructor.
var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller constructor")

// Caller is the authenticated identity invoking an operation: a small
// immutable value passed explicitly into every call. There is no ambient
// "current user"; authorization inputs are always visible in the signature.
type Caller struct {
	id   kernel.UUID
	role user.Role
}

// NewCaller creates a validated caller identity.
func NewCaller(id kernel.UUID, role user.Role) (Caller, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Caller{}, err
	}

	return Caller{id: id, role: role}, nil
}

// Validate ensures the caller was created via NewCaller.
func (c Caller) Validate() error {
	if err := c.id.Validate(); err != nil {
		return ErrCallerIsNotConstructed
	}
	return nil
}

// ID returns the caller's user identifier.
func (c Caller) ID() kernel.UUID {
	return c.id
}

// Role returns the caller's authorization role.
func (c Caller) Role() user.Role {
	return c.role
}

// Owns reports whether the caller is the record owner.
func (c Caller) Owns(ownerID kernel.UUID) bool {
	return c.id.IsEqual(ownerID)
}

// AccessPolicy decides which callers may act on which orders. Authorization
// is always evaluated before transition validation so an unauthorized caller
// never learns whether a transition would have been legal.
type AccessPolicy struct{}

// NewAccessPolicy creates the order access policy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanView allows the owner or an admin to read an order.
func (AccessPolicy) CanView(caller Caller, ownerID kernel.UUID) error {
	if caller.Owns(ownerID) || caller.Role().IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("access to this order denied")
}

// CanUpdate allows the owner or an admin to change an order's status.
func (AccessPolicy) CanUpdate(caller Caller, ownerID kernel.UUID) error {
	if caller.Owns(ownerID) || caller.Role().IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("access to update this order denied")
}

// CanCancel allows only the owner to cancel an order. Admins are explicitly
// excluded: cancellation is a narrower rule than the generic update check.
func (AccessPolicy) CanCancel(caller Caller, ownerID kernel.UUID) error {
	if caller.Owns(ownerID) {
		return nil
	}
	return errs.NewAccessDeniedError("only the order owner can cancel the order")
}

// CanListUsers allows only admins to enumerate accounts.
func (AccessPolicy) CanListUsers(caller Caller) error {
	if caller.Role().IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("only admins can list users")
}
