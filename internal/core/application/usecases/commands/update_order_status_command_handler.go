package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler handles status transitions on existing
// orders. The read, the authorization check, the transition validation and
// the write all happen inside a single transaction, so two racing updates
// serialize and the loser is validated against the winner's committed status.
type UpdateOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	accessPolicy services.AccessPolicy
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		accessPolicy: services.NewAccessPolicy(),
	}
}

// Handle processes the status update command and returns the updated order.
// Checks run in a fixed order: existence, then authorization, then status
// recognition, then transition validity. A caller sending a bogus status for
// an order it cannot touch gets the not-found or access error, never a hint
// that the status string was the problem.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	if err = h.accessPolicy.CanUpdate(cmd.Caller(), aggregate.OwnerID()); err != nil {
		return nil, err
	}

	target, err := order.StatusFromString(cmd.Status())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(target, time.Now().UTC()); err != nil {
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
