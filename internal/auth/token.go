package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coursedeck/internal/apperr"
	"coursedeck/internal/models"
)

// TokenTTL is how long an issued identity token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// Identity is the decoded, verified set of claims about a caller.
type Identity struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// Claims embeds the identity fields alongside the registered JWT claims.
// The user id doubles as the Subject.
type Claims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token embedding the identity, expiring after
// TokenTTL.
func IssueToken(id Identity, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret not configured")
	}

	now := time.Now()
	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a signed token, returning the identity it
// carries. Malformed, expired, differently-signed, and non-HS256 tokens all
// fail with apperr.ErrInvalidToken.
func VerifyToken(tokenStr, secret string) (Identity, error) {
	if secret == "" {
		return Identity{}, errors.New("secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperr.ErrInvalidToken
	}

	if !claims.Role.Valid() {
		return Identity{}, apperr.ErrInvalidToken
	}

	return Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}
