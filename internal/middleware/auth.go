package middleware

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// Protected requires a valid "Authorization: Bearer <token>" header and stores
// the resolved actor in the request locals.
func Protected(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := bearerToken(header)
		if !ok {
			return types.NewUnauthorizedError("Not authorized, no token")
		}

		user, err := users.Authenticate(c.UserContext(), token)
		if err != nil {
			return types.NewUnauthorizedError("Not authorized, token failed")
		}

		c.Locals(actorKey, services.ActorFromUser(user))
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// CurrentActor returns the actor stored by Protected.
func CurrentActor(c *fiber.Ctx) (services.Actor, bool) {
	actor, ok := c.Locals(actorKey).(services.Actor)
	return actor, ok
}
