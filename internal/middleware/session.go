package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amdc-hr/interview-intake/internal/session"
)

// CandidateSession loads the candidate session cookie into request locals when
// present and valid. Requests without a usable session pass through untouched:
// the quiz pages tolerate direct navigation.
func CandidateSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := manager.Parse(c.Cookies(session.CookieName))
		if err == nil {
			c.Locals("candidate_id", claims.CandidateID)
			c.Locals("full_name", claims.FullName)
		}

		return c.Next()
	}
}
