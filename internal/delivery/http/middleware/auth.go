package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
)

// UserIDKey - ключ c.Locals с id аутентифицированного пользователя
const UserIDKey = "user_id"

// Authenticator проверяет токен и возвращает id пользователя
type Authenticator interface {
	Authenticate(raw string) (string, error)
}

// Auth требует заголовок Authorization: Bearer <token>
func Auth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return utils.SendError(c, errors.ErrAuthenticationFailed.WithDetails(map[string]interface{}{
				"reason": "missing bearer token",
			}))
		}

		userID, err := auth.Authenticate(strings.TrimSpace(raw))
		if err != nil {
			return utils.SendError(c, err)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID возвращает id пользователя, выставленный Auth
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
