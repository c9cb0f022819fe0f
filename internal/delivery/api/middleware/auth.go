package middleware

import (
	"log/slog"
	"slices"
	"strings"

	deliverycontext "warden/internal/delivery/context"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	contextKeyIdentityID = "identityID"
	contextKeyEmail      = "email"
	contextKeyRoles      = "roles"

	bearerPrefix = "Bearer "
)

// AuthMiddleware validates bearer tokens and enforces roles.
type AuthMiddleware struct {
	validator service.TokenValidator
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(validator service.TokenValidator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, logger: logger}
}

// Authenticate validates the access token and stores its claims on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(tokenString) == "" {
			return errors.Wrap(domainerrors.ErrUnauthorized, "bearer token is missing")
		}

		claims, err := m.validator.Validate(strings.TrimSpace(tokenString))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrUnauthorized, "invalid access token")
		}

		identityID, err := claims.IdentityID()
		if err != nil {
			return errors.Wrap(domainerrors.ErrUnauthorized, "invalid subject in access token")
		}

		c.Set(contextKeyIdentityID, identityID)
		c.Set(contextKeyEmail, claims.Email)
		c.Set(contextKeyRoles, claims.Roles)

		return next(c)
	}
}

// RequireRole only lets through callers whose token carries the role.
// It must be used after Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(GetRoles(c), requiredRole) {
				return errors.Wrapf(domainerrors.ErrForbidden, "requires %q role", requiredRole)
			}

			return next(c)
		}
	}
}

// GetIdentityID returns the authenticated identity ID.
func GetIdentityID(c echo.Context) (uuid.UUID, bool) {
	identityID, ok := c.Get(contextKeyIdentityID).(uuid.UUID)

	return identityID, ok
}

// GetEmail returns the authenticated email.
func GetEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(contextKeyEmail).(string)

	return email, ok && email != ""
}

// GetRoles returns the roles carried by the access token.
func GetRoles(c echo.Context) []string {
	roles, _ := c.Get(contextKeyRoles).([]string)

	return roles
}
