package auth

import (
	goerrors "errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// audience, expiry, malformed claims. Callers should treat all of them as
// a 401 without distinguishing.
var ErrInvalidToken = goerrors.New("invalid or expired token")

// Identity is the verified caller extracted from a bearer token. ID matches
// the score record id in the database.
type Identity struct {
	ID       string
	Email    string
	Metadata map[string]interface{}
}

func (id *Identity) Username() string {
	if name, ok := id.Metadata["username"].(string); ok && name != "" {
		return name
	}
	if name, ok := id.Metadata["full_name"].(string); ok && name != "" {
		return name
	}
	return id.Email
}

// Verifier checks bearer tokens issued by the identity provider. Tokens are
// HS256-signed with the provider's JWT secret and carry the provider's
// audience claim.
type Verifier struct {
	secret   []byte
	audience string
}

func NewVerifier(secret, audience string) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT secret is not configured")
	}
	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
	}, nil
}

func (v *Verifier) Verify(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, ErrInvalidToken
	}

	identity := &Identity{ID: subject}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if metadata, ok := claims["user_metadata"].(map[string]interface{}); ok {
		identity.Metadata = metadata
	} else {
		identity.Metadata = map[string]interface{}{}
	}
	return identity, nil
}
