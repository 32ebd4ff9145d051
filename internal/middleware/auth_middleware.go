package middleware

import (
	"strings"

	"jobmatch/internal/guard"
	"jobmatch/internal/models"
	"jobmatch/internal/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// UserKey is the fiber.Ctx locals key the resolved user is stored under.
const UserKey = "user"

// AuthRequired is a Fiber middleware gating routes on authentication and,
// when requiredRole is non-empty, on role. A missing or invalid bearer token
// reads as logged out; the guard then redirects rather than returning 401,
// mirroring the client-side route guard this replaces.
func AuthRequired(authService *services.AuthService, requiredRole models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user *models.User

		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			resolved, err := authService.ResolveToken(parts[1])
			if err != nil {
				log.Debugf("Rejected bearer token: %v", err)
			} else {
				user = resolved
			}
		}

		decision := guard.Evaluate(false, user, requiredRole)
		if decision.Action == guard.Redirect {
			return c.Redirect(decision.Target, fiber.StatusSeeOther)
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user the middleware resolved for this request.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
