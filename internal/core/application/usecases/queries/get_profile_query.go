package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetProfileQueryIsNotConstructed = errors.New(
	"GetProfileQuery must be created via NewGetProfileQuery constructor",
)

// UserResponse represents an account record in query results.
// The password hash is never included.
type UserResponse struct {
	ID        kernel.UUID
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetProfileQuery retrieves the profile of the authenticated user.
type GetProfileQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProfileQuery creates a query to fetch the caller's own profile.
func NewGetProfileQuery(userID kernel.UUID) (GetProfileQuery, error) {
	query := GetProfileQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUserID(userID); err != nil {
		return GetProfileQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

// UserID returns the identifier of the requested profile.
func (q GetProfileQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetProfileQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}
