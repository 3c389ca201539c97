package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"reviewio/internal/apperr"
	"reviewio/internal/services"
)

var (
	errNoToken      = apperr.Unauthorized("You are not logged in. Please log in to get access")
	errInvalidToken = apperr.Unauthorized("Invalid token. Please log in again")
)

// Protect requires a valid HS256 bearer token and stores its uid in
// Locals("user_id").
func Protect(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
			return errNoToken
		}

		var claims services.Claims
		token, err := jwt.ParseWithClaims(
			strings.TrimSpace(auth[7:]),
			&claims,
			func(t *jwt.Token) (any, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return errInvalidToken
		}

		uid := claims.UID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			return errInvalidToken
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}
