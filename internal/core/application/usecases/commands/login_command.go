package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand represents an authentication attempt with email and password.
type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewLoginCommand creates a login command. The email must be well-formed;
// whether it belongs to an account is only revealed as a generic
// invalid-credentials failure.
func NewLoginCommand(email, password string) (LoginCommand, error) {
	command := LoginCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setEmail(email),
		command.setPassword(password),
	); err != nil {
		return LoginCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

// Email returns the login email address.
func (c LoginCommand) Email() string {
	return c.email
}

// Password returns the plaintext password for verification.
func (c LoginCommand) Password() string {
	return c.password
}

func (c *LoginCommand) setEmail(email string) error {
	if err := user.ValidateEmail(email); err != nil {
		return err
	}

	c.email = email
	return nil
}

func (c *LoginCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}

	c.password = password
	return nil
}
