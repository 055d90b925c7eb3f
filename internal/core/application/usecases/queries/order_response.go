// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and repositories, reading
// directly from the database for efficiency. They never modify state.
package queries

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// ItemResponse represents a single order line in query results.
// The JSON tags match the storage format of the orders.items column.
type ItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderResponse represents a full order record in query results.
type OrderResponse struct {
	ID          kernel.UUID
	OwnerID     kernel.UUID
	Items       []ItemResponse
	TotalAmount float64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func unmarshalItems(raw []byte) ([]ItemResponse, error) {
	items := make([]ItemResponse, 0)
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
