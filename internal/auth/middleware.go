package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/token"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Authenticated resolves the caller's bearer token and attaches the
// resolved identity to the request context. Missing or expired tokens are
// 401 (authenticate again); malformed tokens are 403 (reject outright).
func Authenticated(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "No authentication token provided")
		}

		claims, err := tokens.VerifySession(tokenStr)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return response.TokenExpired(c, "Please login again")
			}
			return response.Forbidden(c, "Authentication failed")
		}

		c.Locals(identityKey, claims)
		return c.Next()
	}
}

// RequireRoles gates an operation behind an allow-list of role names. It
// rejects when no identity is attached at all, even though Authenticated
// should have guaranteed one.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := IdentityFromCtx(c)
		if claims == nil || claims.Role == "" {
			return response.Forbidden(c, "User role not found")
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, fmt.Sprintf("Role '%s' is not authorized for this action", claims.Role))
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// silently proceeds without one otherwise.
func OptionalAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := tokens.VerifySession(tokenStr); err == nil {
				c.Locals(identityKey, claims)
			}
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the identity attached by the middleware, or nil.
func IdentityFromCtx(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(identityKey).(*token.Claims)
	return claims
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
