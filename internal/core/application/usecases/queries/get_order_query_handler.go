package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order directly from the database.
// The not-found check runs before the access check, so probing for foreign
// order ids yields NotFound only when the record truly does not exist and
// AccessDenied when it does.
type GetOrderQueryHandler struct {
	db           *gorm.DB
	accessPolicy services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		db:           db,
		accessPolicy: services.NewAccessPolicy(),
	}
}

// Handle executes the query and returns the full order record.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			items,
			total_amount,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	response, err := scanOrderRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	if err = h.accessPolicy.CanView(query.Caller(), response.OwnerID); err != nil {
		return OrderResponse{}, err
	}

	return response, nil
}

// scanOrderRow maps one orders row onto an OrderResponse. Shared by the
// single-order and list queries, which select the same column set.
func scanOrderRow(scan func(dest ...any) error) (OrderResponse, error) {
	var (
		id          uuid.UUID
		ownerID     uuid.UUID
		rawItems    []byte
		totalAmount float64
		status      int
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := scan(&id, &ownerID, &rawItems, &totalAmount, &status, &createdAt, &updatedAt); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	orderOwnerID, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	items, err := unmarshalItems(rawItems)
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:          orderID,
		OwnerID:     orderOwnerID,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      order.Status(status).String(),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
