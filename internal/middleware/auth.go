package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"razzrel/internal/auth"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
)

const principalKey = "principal"

// TokenVerifier verifies a raw token string.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RevocationChecker reports whether a token id was revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RoleSource returns the role currently stored for a user.
type RoleSource interface {
	RoleOf(ctx context.Context, userID uint) (model.Role, error)
}

// Authenticator returns the single token verification middleware. The
// Authorization header may carry the bare token or "Bearer <token>".
// A missing header fails with ErrNoCredential, anything else that does not
// verify fails with ErrUnauthorized.
func Authenticator(verifier TokenVerifier, revocations RevocationChecker) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  principalKey,
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, header string) (interface{}, error) {
			raw := stripScheme(header)
			if raw == "" {
				return nil, apperrors.ErrNoCredential
			}
			claims, err := verifier.Verify(raw)
			if err != nil {
				return nil, err
			}
			if revocations != nil && revocations.IsRevoked(c.Request().Context(), claims.ID) {
				log.Debugf("rejected revoked token %s for user %d", claims.ID, claims.UserID)
				return nil, apperrors.ErrUnauthorized
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if stripScheme(c.Request().Header.Get(echo.HeaderAuthorization)) == "" {
				return apperrors.ErrNoCredential
			}
			log.Debugf("token rejected for %s: %v", c.Request().URL.Path, err)
			return apperrors.ErrUnauthorized
		},
	})
}

// stripScheme removes an optional, case-insensitive "Bearer " prefix.
func stripScheme(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 6 && strings.EqualFold(header[:6], "bearer") {
		rest := header[6:]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest)
		}
	}
	return header
}

// Principal returns the claims stored by Authenticator.
func Principal(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(principalKey).(*auth.Claims)
	return claims, ok
}

// MustPrincipal returns the authenticated identity or ErrUnauthorized when
// the route is not behind Authenticator.
func MustPrincipal(c echo.Context) (auth.Identity, error) {
	claims, ok := Principal(c)
	if !ok {
		return auth.Identity{}, apperrors.ErrUnauthorized
	}
	return claims.Identity, nil
}

// Require evaluates a policy against the principal before the handler runs.
func Require(policy func(echo.Context) auth.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := MustPrincipal(c)
			if err != nil {
				return err
			}
			if err := auth.Authorize(p, policy(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// AdminOrOwnerParam builds a policy allowing admins and the user whose id is
// the named path parameter.
func AdminOrOwnerParam(name string) func(echo.Context) auth.Policy {
	return func(c echo.Context) auth.Policy {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			return func(auth.Identity) error {
				return apperrors.NewValidationError("invalid %s", name)
			}
		}
		return auth.AdminOrOwner(uint(id))
	}
}

// RequireAdmin allows only admins. With roles set, the role is re-read from
// the store so a downgrade applies before the token expires.
func RequireAdmin(roles RoleSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := MustPrincipal(c)
			if err != nil {
				return err
			}
			if err := auth.Authorize(p, auth.AdminOnly()); err != nil {
				return err
			}
			if roles != nil {
				role, err := roles.RoleOf(c.Request().Context(), p.UserID)
				if err != nil {
					if errors.Is(err, apperrors.ErrUserNotFound) {
						return apperrors.ErrAdminRequired
					}
					return err
				}
				if role != model.RoleAdmin {
					log.Warnf("user %d presented admin token but stored role is %s", p.UserID, role)
					return apperrors.ErrAdminRequired
				}
			}
			return next(c)
		}
	}
}
