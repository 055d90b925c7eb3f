package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryResponse carries one page of orders plus the total count of
// the filtered set before pagination, so callers can compute total pages.
type ListOrdersQueryResponse struct {
	Orders []OrderResponse
	Total  int64
	Page   int
	Size   int
}

// ListOrdersQueryHandler retrieves pages of orders directly from the database.
// Results are ordered by created_at descending, newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for paginated order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query. The count and the page read share the
// same WHERE clause so Total always reflects the filtered set.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where := "1 = 1"
	args := make([]any, 0, 2)

	if !query.Caller().Role().IsAdmin() {
		where += " AND owner_id = ?"
		args = append(args, query.Caller().ID().String())
	}

	if filter := query.StatusFilter(); filter != nil {
		where += " AND status = ?"
		args = append(args, int(*filter))
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			items,
			total_amount,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, append(args, query.Size(), query.Offset())...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0, query.Size())
	for rows.Next() {
		orderResp, scanErr := scanOrderRow(rows.Scan)
		if scanErr != nil {
			return ListOrdersQueryResponse{}, scanErr
		}
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders: orders,
		Total:  total,
		Page:   query.Page(),
		Size:   query.Size(),
	}, nil
}
