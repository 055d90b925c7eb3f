package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrUpdateProfileCommandIsNotConstructed = errors.New(
		"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
	)
	ErrNothingToUpdate = errors.New("at least one of name or email must be provided")
)

// UpdateProfileCommand represents a partial profile update for the caller's
// own account. Nil fields are left unchanged.
type UpdateProfileCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   *string
	email  *string

	guard guard.ConstructorGuard
}

// NewUpdateProfileCommand creates a command to update the caller's profile.
// At least one of name or email must be set.
func NewUpdateProfileCommand(userID kernel.UUID, name, email *string) (UpdateProfileCommand, error) {
	command := UpdateProfileCommand{
		guard: guard.NewConstructorGuard(),
	}

	if name == nil && email == nil {
		return UpdateProfileCommand{}, ErrNothingToUpdate
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setName(name),
		command.setEmail(email),
	); err != nil {
		return UpdateProfileCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

// UserID returns the identifier of the account being updated.
func (c UpdateProfileCommand) UserID() kernel.UUID {
	return c.userID
}

// Name returns the new display name, or nil when unchanged.
func (c UpdateProfileCommand) Name() *string {
	return c.name
}

// Email returns the new email address, or nil when unchanged.
func (c UpdateProfileCommand) Email() *string {
	return c.email
}

func (c *UpdateProfileCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *UpdateProfileCommand) setName(name *string) error {
	if name != nil && *name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *UpdateProfileCommand) setEmail(email *string) error {
	if email != nil {
		if err := user.ValidateEmail(*email); err != nil {
			return err
		}
	}

	c.email = email
	return nil
}
