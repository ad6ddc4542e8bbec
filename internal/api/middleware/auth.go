package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ShkryumDev/pizza-delivery-api/internal/metrics"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/service"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	CtxUsername = "username"
	CtxTokenID  = "jti"
	CtxTokenExp = "token_exp"
)

// TokenRevocations abstracts the logout denylist (Redis).
type TokenRevocations interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Typed verification failures, so callers branch on the kind instead of
// catching a generic error.
var (
	errTokenMissing   = errors.New("missing authorization header")
	errTokenMalformed = errors.New("invalid authorization header")
	errTokenExpired   = errors.New("token expired")
	errTokenInvalid   = errors.New("invalid token")
	errWrongTokenType = errors.New("refresh token not accepted here")
	errTokenRevoked   = errors.New("token revoked")
)

// tokenIdentity is the result of a successful verification.
type tokenIdentity struct {
	Username string
	TokenID  string
	Expires  time.Time
}

// verifyAccessToken checks the bearer credential from the Authorization
// header and returns the identity it was issued for.
func verifyAccessToken(authHeader, secret string) (*tokenIdentity, error) {
	if authHeader == "" {
		return nil, errTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errTokenMalformed
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}
	if !tkn.Valid {
		return nil, errTokenInvalid
	}
	if claims["type"] != service.TokenTypeAccess {
		return nil, errWrongTokenType
	}

	username, _ := claims["sub"].(string)
	if username == "" {
		return nil, errTokenInvalid
	}

	id := &tokenIdentity{Username: username}
	id.TokenID, _ = claims["jti"].(string)
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		id.Expires = exp.Time
	}
	return id, nil
}

// failureReason maps a verification error to its metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, errTokenMissing):
		return "missing"
	case errors.Is(err, errTokenMalformed):
		return "malformed"
	case errors.Is(err, errTokenExpired):
		return "expired"
	case errors.Is(err, errWrongTokenType):
		return "wrong_type"
	case errors.Is(err, errTokenRevoked):
		return "revoked"
	default:
		return "invalid"
	}
}

// Auth validates the access JWT, rejects revoked tokens, and injects the
// token subject into the request context. Role flags are deliberately not
// read from the token: the Identity middleware resolves them from the user
// store on every request.
func Auth(jwtSecret string, revocations TokenRevocations) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := verifyAccessToken(c.Request().Header.Get("Authorization"), jwtSecret)
			if err == nil && id.TokenID != "" && revocations != nil {
				revoked, revErr := revocations.IsRevoked(c.Request().Context(), id.TokenID)
				if revErr == nil && revoked {
					err = errTokenRevoked
				}
				// A denylist read failure fails open: revocation is
				// best-effort, expiry still bounds the damage.
			}
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(CtxUsername, id.Username)
			c.Set(CtxTokenID, id.TokenID)
			c.Set(CtxTokenExp, id.Expires)

			return next(c)
		}
	}
}
