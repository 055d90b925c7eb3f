// Package order provides domain entities and business logic for order
// management in the marketplace. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: the aggregate root managing order identity, line items, total and lifecycle
//   - Item: a write-once value object for an order line
//   - Status: a state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, owner, at least one item and a positive total
//   - Status follows a defined workflow: created -> in_progress -> completed,
//     with cancellation possible from created and in_progress
//   - completed and cancelled are terminal statuses; orders are never deleted
//   - items and total_amount are write-once; the total is not recomputed from items
//
// The transition rules live in a single data table (see status.go) so they can
// be audited and tested by enumeration.
package order
