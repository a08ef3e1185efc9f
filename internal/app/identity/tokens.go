package identity

import (
	"errors"
	"time"

	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrBadToken is returned for tokens that fail signature, issuer, or
// expiry checks.
var ErrBadToken = errors.New("invalid or expired token")

// Claims is the JWT payload issued at sign-in. The role claim is a
// snapshot; middleware re-resolves the live role on every request.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// Tokens issues and verifies HMAC-signed bearer tokens for API
// clients that cannot hold a session cookie.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokens(secret, issuer string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Issue signs a token for the account with the given effective role.
func (t *Tokens) Issue(acct *models.Account, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.UID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: acct.Email,
		Name:  acct.DisplayName,
		Role:  role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifyToken implements auth.TokenVerifier. It checks signature,
// issuer, and expiry and returns the embedded session user.
func (t *Tokens) VerifyToken(raw string) (*auth.SessionUser, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil, ErrBadToken
	}
	return &auth.SessionUser{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
