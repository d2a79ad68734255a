package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminRole is the role claim required on admin routes.
const AdminRole = "Admin"

const adminContextKey = "admin.subject"

var errMissingBearer = errors.New("missing bearer token")

// AdminClaims are the claims carried by admin access tokens.
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IssueAdminToken signs an HS256 admin token for subject valid for ttl.
func IssueAdminToken(secret []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: AdminRole,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// AdminAuth rejects requests without a valid admin bearer token. The token
// subject is stored on the context and later recorded as the author of admin
// changes.
func AdminAuth(secret []byte, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if skipper(ctx) {
				return next(ctx)
			}

			claims, err := parseAdminToken(secret, ctx.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, "unauthorized")
			}
			if claims.Role != AdminRole {
				return writeError(ctx, http.StatusForbidden, "admin role required")
			}

			ctx.Set(adminContextKey, claims.Subject)
			return next(ctx)
		}
	}
}

// AdminRoutesOnly skips every request outside the admin API.
func AdminRoutesOnly(ctx echo.Context) bool {
	return !strings.HasPrefix(ctx.Request().URL.Path, "/api/v1/admin")
}

func parseAdminToken(secret []byte, header string) (*AdminClaims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, errMissingBearer
	}

	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func adminSubject(ctx echo.Context) string {
	subject, _ := ctx.Get(adminContextKey).(string)
	return subject
}
