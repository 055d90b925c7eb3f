package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage = 1
	defaultSize = 10
)

// OrdersServer handles the order lifecycle endpoints.
// It coordinates between HTTP handlers and application use cases.
type OrdersServer struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewOrdersServer creates an orders HTTP server with the required command and
// query handlers.
func NewOrdersServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *OrdersServer {
	return &OrdersServer{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// RegisterRoutes attaches the order endpoints to the echo instance.
// All /v1 routes require a verified bearer token.
func (s *OrdersServer) RegisterRoutes(e *echo.Echo, identity ports.IdentityProvider) {
	e.GET("/health", s.Health)

	v1 := e.Group("/v1", AuthMiddleware(identity))
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:order_id", s.GetOrder)
	v1.PUT("/orders/:order_id", s.UpdateOrder)
	v1.DELETE("/orders/:order_id", s.CancelOrder)
}

// Health handles GET /health.
func (s *OrdersServer) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "orders",
	})
}

type createOrderItemRequest struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type createOrderRequest struct {
	Items       []createOrderItemRequest `json:"items"`
	TotalAmount float64                  `json:"total_amount"`
}

// CreateOrder handles POST /v1/orders.
func (s *OrdersServer) CreateOrder(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondCode(ctx, CodeValidationError, "invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, line := range request.Items {
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return respondCode(ctx, CodeValidationError, "invalid product_id: "+line.ProductID)
		}

		item, err := order.NewItem(productID, line.ProductName, line.Quantity, line.Price)
		if err != nil {
			return respondError(ctx, err)
		}

		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), caller.ID(), items, request.TotalAmount)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]string{"order_id": created.ID().String()})
}

// GetOrder handles GET /v1/orders/:order_id.
func (s *OrdersServer) GetOrder(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return respondCode(ctx, CodeValidationError, "invalid order_id")
	}

	query, err := queries.NewGetOrderQuery(orderID, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]any{"order": orderJSON(result)})
}

// ListOrders handles GET /v1/orders with page, size and status parameters.
func (s *OrdersServer) ListOrders(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	page, size, err := pagination(ctx)
	if err != nil {
		return respondCode(ctx, CodeValidationError, err.Error())
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return respondCode(ctx, CodeInvalidStatus, "invalid status: "+raw)
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(caller, page, size, statusFilter)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	orders := make([]map[string]any, len(result.Orders))
	for i, o := range result.Orders {
		orders[i] = orderJSON(o)
	}

	return respondData(ctx, map[string]any{
		"orders": orders,
		"total":  result.Total,
		"page":   result.Page,
		"size":   result.Size,
	})
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

// UpdateOrder handles PUT /v1/orders/:order_id.
func (s *OrdersServer) UpdateOrder(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return respondCode(ctx, CodeValidationError, "invalid order_id")
	}

	var request updateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondCode(ctx, CodeValidationError, "invalid request body")
	}

	// The status string travels into the command as-is. The handler only
	// interprets it after loading and authorizing the order, so the response
	// for a missing or foreign order is the same whatever the status says.
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, caller, request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]string{"message": "Order updated successfully"})
}

// CancelOrder handles DELETE /v1/orders/:order_id.
func (s *OrdersServer) CancelOrder(ctx echo.Context) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller identity")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return respondCode(ctx, CodeValidationError, "invalid order_id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, map[string]string{"message": "Order cancelled successfully"})
}

func orderJSON(o queries.OrderResponse) map[string]any {
	return map[string]any{
		"id":           o.ID.String(),
		"user_id":      o.OwnerID.String(),
		"items":        o.Items,
		"total_amount": o.TotalAmount,
		"status":       o.Status,
		"created_at":   o.CreatedAt.Format(time.RFC3339),
		"updated_at":   o.UpdatedAt.Format(time.RFC3339),
	}
}

// pagination parses the page and size query parameters, applying defaults when
// absent. Bounds enforcement lives in the query constructors.
func pagination(ctx echo.Context) (int, int, error) {
	page := defaultPage
	if raw := ctx.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page: %s", raw)
		}
		page = parsed
	}

	size := defaultSize
	if raw := ctx.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid size: %s", raw)
		}
		size = parsed
	}

	return page, size, nil
}
