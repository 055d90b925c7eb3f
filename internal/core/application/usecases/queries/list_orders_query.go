package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MinPage is the first page number; pagination is 1-based.
	MinPage = 1

	// MinPageSize and MaxPageSize bound the page size. Out-of-range values
	// are rejected, not clamped.
	MinPageSize = 1
	MaxPageSize = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a page of orders. Non-admin callers are scoped to
// their own orders; admins see all orders. The optional status filter narrows
// the result either way.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	caller       services.Caller
	page         int
	size         int
	statusFilter *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paginated order listing query.
// Page must be >= 1 and size within [1, 100]; statusFilter may be nil.
func NewListOrdersQuery(caller services.Caller, page, size int, statusFilter *order.Status) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCaller(caller),
		query.setPage(page),
		query.setSize(size),
		query.setStatusFilter(statusFilter),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Caller returns the authenticated identity requesting the listing.
func (q ListOrdersQuery) Caller() services.Caller {
	return q.caller
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// Size returns the page size.
func (q ListOrdersQuery) Size() int {
	return q.size
}

// StatusFilter returns the optional status filter, or nil for all statuses.
func (q ListOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}

// Offset returns the row offset for the requested page.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.size
}

func (q *ListOrdersQuery) setCaller(caller services.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	q.caller = caller
	return nil
}

func (q *ListOrdersQuery) setPage(page int) error {
	if page < MinPage {
		return errs.NewValueIsInvalidErrorWithCause(
			"page is invalid",
			fmt.Errorf("%d is less than %d", page, MinPage),
		)
	}

	q.page = page
	return nil
}

func (q *ListOrdersQuery) setSize(size int) error {
	if size < MinPageSize || size > MaxPageSize {
		return errs.NewValueIsInvalidErrorWithCause(
			"size is invalid",
			fmt.Errorf("%d is outside [%d, %d]", size, MinPageSize, MaxPageSize),
		)
	}

	q.size = size
	return nil
}

func (q *ListOrdersQuery) setStatusFilter(statusFilter *order.Status) error {
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return err
		}
	}

	q.statusFilter = statusFilter
	return nil
}
