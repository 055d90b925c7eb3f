package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProfileQueryHandler retrieves a user's profile directly from the database.
type GetProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetProfileQueryHandler creates a handler for profile reads.
// Requires a GORM database connection for query execution.
func NewGetProfileQueryHandler(db *gorm.DB) GetProfileQueryHandler {
	return GetProfileQueryHandler{db: db}
}

// Handle executes the query and returns the profile record.
func (h GetProfileQueryHandler) Handle(ctx context.Context, query GetProfileQuery) (UserResponse, error) {
	if err := query.Validate(); err != nil {
		return UserResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			email,
			name,
			role,
			created_at,
			updated_at
		FROM users
		WHERE id = ?
	`, query.UserID().String()).Row()

	response, err := scanUserRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserResponse{}, errs.NewObjectNotFoundError("user_id", query.UserID().String())
		}
		return UserResponse{}, err
	}

	return response, nil
}

// scanUserRow maps one users row onto a UserResponse. Shared by the profile
// and user listing queries, which select the same column set.
func scanUserRow(scan func(dest ...any) error) (UserResponse, error) {
	var (
		id        uuid.UUID
		email     string
		name      string
		role      int
		createdAt time.Time
		updatedAt time.Time
	)

	if err := scan(&id, &email, &name, &role, &createdAt, &updatedAt); err != nil {
		return UserResponse{}, err
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return UserResponse{}, err
	}

	return UserResponse{
		ID:        userID,
		Email:     email,
		Name:      name,
		Role:      user.Role(role).String(),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
