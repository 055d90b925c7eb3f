package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery retrieves a page of accounts. Admin-only.
type ListUsersQuery struct { //nolint:recvcheck //using for validation
	caller services.Caller
	page   int
	size   int

	guard guard.ConstructorGuard
}

// NewListUsersQuery creates a paginated user listing query.
// Page must be >= 1 and size within [1, 100]; out-of-range values are
// rejected, not clamped.
func NewListUsersQuery(caller services.Caller, page, size int) (ListUsersQuery, error) {
	query := ListUsersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCaller(caller),
		query.setPage(page),
		query.setSize(size),
	); err != nil {
		return ListUsersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

// Caller returns the authenticated identity requesting the listing.
func (q ListUsersQuery) Caller() services.Caller {
	return q.caller
}

// Page returns the 1-based page number.
func (q ListUsersQuery) Page() int {
	return q.page
}

// Size returns the page size.
func (q ListUsersQuery) Size() int {
	return q.size
}

// Offset returns the row offset for the requested page.
func (q ListUsersQuery) Offset() int {
	return (q.page - 1) * q.size
}

func (q *ListUsersQuery) setCaller(caller services.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	q.caller = caller
	return nil
}

func (q *ListUsersQuery) setPage(page int) error {
	if page < MinPage {
		return errs.NewValueIsInvalidErrorWithCause(
			"page is invalid",
			fmt.Errorf("%d is less than %d", page, MinPage),
		)
	}

	q.page = page
	return nil
}

func (q *ListUsersQuery) setSize(size int) error {
	if size < MinPageSize || size > MaxPageSize {
		return errs.NewValueIsInvalidErrorWithCause(
			"size is invalid",
			fmt.Errorf("%d is outside [%d, %d]", size, MinPageSize, MaxPageSize),
		)
	}

	q.size = size
	return nil
}
