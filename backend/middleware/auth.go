package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"studytracker/backend/utils"
)

const (
	// UserIDHeader carries the caller's user id. It is trusted as-is.
	UserIDHeader = "X-User-Id"

	userIDKey = "user_id"
)

// IdentityMiddleware requires a positive integer X-User-Id header and stores
// it for handlers. Requests without one are rejected with 401.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(UserIDHeader))
		if raw == "" {
			return utils.Unauthorized(c, "missing "+UserIDHeader+" header")
		}

		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || id == 0 {
			return utils.Unauthorized(c, "invalid "+UserIDHeader+" header")
		}

		c.Locals(userIDKey, uint(id))
		return c.Next()
	}
}

// UserID returns the identity set by IdentityMiddleware.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(userIDKey).(uint)
	return id, ok && id != 0
}
