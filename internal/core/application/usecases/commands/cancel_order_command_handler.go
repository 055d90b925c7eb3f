package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// CancelOrderCommandHandler handles order cancellation.
// Cancellation is owner-only; cancelling an order that is already completed
// or cancelled fails with CannotCancel.
type CancelOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	accessPolicy services.AccessPolicy
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:   uowFactory,
		accessPolicy: services.NewAccessPolicy(),
	}
}

// Handle processes the cancellation command and returns the cancelled order.
// The order is re-read inside the transaction, so of two concurrent
// cancellations exactly one succeeds and the other fails on the terminal
// status.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.accessPolicy.CanCancel(cmd.Caller(), aggregate.OwnerID()); err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
