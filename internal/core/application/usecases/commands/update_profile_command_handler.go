package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// UpdateProfileCommandHandler handles partial profile updates.
// An email change is checked for uniqueness inside the same transaction as
// the write.
type UpdateProfileCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewUpdateProfileCommandHandler creates a handler for profile updates.
func NewUpdateProfileCommandHandler(uowFactory UserUoWFactory) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the profile changes and returns the updated user.
// Returns an error wrapping errs.ErrObjectAlreadyExists when the new email
// belongs to another account.
func (h *UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
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

	userRepo := uow.UserRepository()
	aggregate, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if email := cmd.Email(); email != nil && *email != aggregate.Email() {
		_, err = userRepo.GetByEmail(ctx, *email)
		if err == nil {
			return nil, errs.NewObjectAlreadyExistsError("email", *email)
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}

		if err = aggregate.ChangeEmail(*email, now); err != nil {
			return nil, err
		}
	}

	if name := cmd.Name(); name != nil {
		if err = aggregate.Rename(*name, now); err != nil {
			return nil, err
		}
	}

	if err = userRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
