package middlewares

import (
	"strings"

	"matka/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth accepts HS256 bearer tokens issued by the auth service. The
// token subject is stored in Locals("admin"). An empty secret disables the check.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		raw := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
		if raw == "" {
			return helpers.JSONError(c, fiber.StatusUnauthorized, "missing bearer token")
		}

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return helpers.JSONError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("admin", claims.Subject)
		return c.Next()
	}
}
