package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// LoginResult carries the issued token and the authenticated user's identity.
type LoginResult struct {
	AccessToken string
	TokenType   string
	UserID      string
}

// LoginCommandHandler authenticates a user and issues an access token.
// Unknown email and wrong password produce the same invalid-credentials
// error so login attempts cannot be used to probe for accounts.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	identity   ports.IdentityProvider
}

// NewLoginCommandHandler creates a handler for login operations.
func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	identity ports.IdentityProvider,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		identity:   identity,
	}
}

// Handle verifies the credentials and returns a signed access token.
func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.UserRepository().GetByEmail(ctx, cmd.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return LoginResult{}, errs.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err = h.hasher.Compare(aggregate.PasswordHash(), cmd.Password()); err != nil {
		return LoginResult{}, errs.ErrInvalidCredentials
	}

	token, err := h.identity.Issue(ports.Claims{
		UserID: aggregate.ID(),
		Email:  aggregate.Email(),
		Role:   aggregate.Role(),
	})
	if err != nil {
		return LoginResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      aggregate.ID().String(),
	}, nil
}
