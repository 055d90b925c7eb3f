package ports

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	UserID kernel.UUID
	Email  string
	Role   user.Role
}

// IdentityProvider issues and verifies access tokens.
type IdentityProvider interface {
	// Issue creates a signed token carrying the given claims.
	Issue(claims Claims) (string, error)

	// Verify parses and validates a token, returning its claims.
	// Returns an error wrapping errs.ErrInvalidCredentials for expired,
	// malformed or tampered tokens.
	Verify(token string) (Claims, error)
}

// PasswordHasher hashes and verifies user credentials. The domain stores
// only the opaque hash; the algorithm lives behind this port.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Compare checks a plaintext password against a stored hash.
	// Returns an error wrapping errs.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
}
