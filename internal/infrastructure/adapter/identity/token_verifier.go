package identity

import (
	"context"
	"fmt"
	"time"

	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	identityport "github.com/cloudai/owner-console/internal/domain/port/identity"
	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier validates HS256 bearer tokens issued for the console
type JWTVerifier struct {
	secret []byte
	issuer string
	logger coreport.Logger
}

// NewJWTVerifier creates a new JWTVerifier instance
func NewJWTVerifier(secret, issuer string, logger coreport.Logger) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

type consoleClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates a raw bearer token
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*identityport.Identity, error) {
	if token == "" {
		return nil, errs.ErrUnauthenticated
	}

	claims := &consoleClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		v.logger.Debug("Token rejected", map[string]any{
			"error": fmt.Sprintf("%v", err),
		})
		return nil, errs.ErrUnauthenticated
	}

	if claims.Subject == "" {
		return nil, errs.ErrUnauthenticated
	}

	ident := &identityport.Identity{
		UID:    claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
		Issuer: claims.Issuer,
	}
	if claims.IssuedAt != nil {
		ident.IssuedAt = claims.IssuedAt.Unix()
	}
	return ident, nil
}

// IssueToken signs a bearer token for the given account. Used by the
// bootstrap tooling and tests; the console itself only verifies.
func (v *JWTVerifier) IssueToken(uid, email, role string, now time.Time, ttl time.Duration) (string, error) {
	claims := consoleClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
