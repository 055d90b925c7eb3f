// Package user provides the User aggregate for account management: identity,
// credentials, profile fields and the role used for authorization decisions.
package user

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser or RestoreUser factory methods.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks the email format shared by registration, login and
// profile updates.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errs.NewValueIsInvalidErrorWithCause(
			"email is invalid",
			fmt.Errorf("'%s' is not a valid email address", email),
		)
	}
	return nil
}

// User is the aggregate root for an account. The password hash is opaque to
// the domain: hashing and comparison live behind the PasswordHasher port.
type User struct {
	id           kernel.UUID
	email        string
	name         string
	passwordHash string
	role         Role

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewUser creates a new account with the default client role.
func NewUser(id kernel.UUID, email, name, passwordHash string, now time.Time) (*User, error) {
	user := &User{
		role:          Client,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		user.setID(id),
		user.setEmail(email),
		user.setName(name),
		user.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// RestoreUser reconstructs a User from persistence, validating the stored role.
func RestoreUser(
	id kernel.UUID,
	email, name, passwordHash string,
	role Role,
	createdAt, updatedAt time.Time,
) (*User, error) {
	user := &User{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		user.setID(id),
		user.setEmail(email),
		user.setName(name),
		user.setPasswordHash(passwordHash),
		user.setRole(role),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate ensures the User instance was created through a factory method.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}

	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// PasswordHash returns the stored credential hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the user's authorization role.
func (u *User) Role() Role {
	return u.role
}

// CreatedAt returns the registration timestamp.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the timestamp of the last profile change.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Rename updates the display name and refreshes updatedAt.
func (u *User) Rename(name string, now time.Time) error {
	if err := u.setName(name); err != nil {
		return err
	}
	u.updatedAt = now
	return nil
}

// ChangeEmail updates the email address and refreshes updatedAt.
// Uniqueness is enforced by the command handler against the repository.
func (u *User) ChangeEmail(email string, now time.Time) error {
	if err := u.setEmail(email); err != nil {
		return err
	}
	u.updatedAt = now
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	u.email = email
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("password_hash")
	}
	u.passwordHash = passwordHash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
