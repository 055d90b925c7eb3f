// Package identity provides token issuance and password hashing adapters
// behind the ports.IdentityProvider and ports.PasswordHasher contracts.
package identity

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSigningSecretIsRequired = errors.New("signing secret must not be empty")

// JWTProvider issues and verifies HS256-signed access tokens.
// Claims carry the user id, email and role; expiry is enforced on Verify.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTProvider creates a token provider with the given signing secret and
// token lifetime.
func NewJWTProvider(secret string, ttl time.Duration) (*JWTProvider, error) {
	if secret == "" {
		return nil, ErrSigningSecretIsRequired
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"token ttl",
			fmt.Errorf("%s is not greater than 0", ttl),
		)
	}

	return &JWTProvider{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token carrying the given claims.
func (p *JWTProvider) Issue(claims ports.Claims) (string, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     claims.Email,
		"user_id": claims.UserID.String(),
		"role":    claims.Role.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(p.ttl).Unix(),
	})

	return token.SignedString(p.secret)
}

// Verify parses and validates a token, returning its claims.
// Expired, malformed or tampered tokens all map to ErrInvalidCredentials so
// the HTTP layer can respond uniformly.
func (p *JWTProvider) Verify(tokenString string) (ports.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	return claimsFromToken(mapClaims)
}

func claimsFromToken(mapClaims jwt.MapClaims) (ports.Claims, error) {
	rawUserID, ok := mapClaims["user_id"].(string)
	if !ok {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	email, ok := mapClaims["sub"].(string)
	if !ok {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	rawRole, ok := mapClaims["role"].(string)
	if !ok {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	role, err := user.RoleFromString(rawRole)
	if err != nil {
		return ports.Claims{}, errs.ErrInvalidCredentials
	}

	return ports.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
