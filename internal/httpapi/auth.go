package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

var errNoIdentity = errors.New("no authenticated identity")

// GenerateToken issues an HS256 token carrying the user id. The host
// application normally issues tokens; this is used by tooling and tests.
func GenerateToken(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// userIDFromRequest resolves the caller's identity from the Authorization
// header. Returns errNoIdentity when the header is missing or invalid.
func userIDFromRequest(c *fiber.Ctx, secret string) (string, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
	if raw == "" {
		return "", errNoIdentity
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errNoIdentity
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errNoIdentity
	}
	return userID, nil
}

// requireAuth rejects unauthenticated requests and stores the user id in
// request locals for handlers.
func requireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := userIDFromRequest(c, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}
