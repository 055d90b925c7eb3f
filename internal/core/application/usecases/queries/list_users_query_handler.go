package queries

import (
	"context"

	"marketplace/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListUsersQueryResponse carries one page of accounts plus the total count.
type ListUsersQueryResponse struct {
	Users []UserResponse
	Total int64
	Page  int
	Size  int
}

// ListUsersQueryHandler retrieves pages of accounts directly from the
// database. Only admins may enumerate accounts; the check runs before any
// database access.
type ListUsersQueryHandler struct {
	db           *gorm.DB
	accessPolicy services.AccessPolicy
}

// NewListUsersQueryHandler creates a handler for paginated user listings.
// Requires a GORM database connection for query execution.
func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{
		db:           db,
		accessPolicy: services.NewAccessPolicy(),
	}
}

// Handle executes the listing query, ordered by created_at descending.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (ListUsersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListUsersQueryResponse{}, err
	}

	if err := h.accessPolicy.CanListUsers(query.Caller()); err != nil {
		return ListUsersQueryResponse{}, err
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM users").
		Scan(&total).Error; err != nil {
		return ListUsersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			email,
			name,
			role,
			created_at,
			updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, query.Size(), query.Offset()).Rows()
	if err != nil {
		return ListUsersQueryResponse{}, err
	}
	defer rows.Close()

	users := make([]UserResponse, 0, query.Size())
	for rows.Next() {
		userResp, scanErr := scanUserRow(rows.Scan)
		if scanErr != nil {
			return ListUsersQueryResponse{}, scanErr
		}
		users = append(users, userResp)
	}

	if err = rows.Err(); err != nil {
		return ListUsersQueryResponse{}, err
	}

	return ListUsersQueryResponse{
		Users: users,
		Total: total,
		Page:  query.Page(),
		Size:  query.Size(),
	}, nil
}
