package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/postsportal/postsportal/internal/web/session"
)

// CurrentUserKey is the fiber.Locals key holding the user's token payload.
const CurrentUserKey = "CurrentUser"

// New returns a middleware that loads the session of every request, attaches
// it for session.FromContext and exposes the user under CurrentUserKey.
// It never rejects a request.
func New(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsStatic(c) {
			return c.Next()
		}

		sess, err := store.Get(c)
		if err != nil {
			return err //nolint:wrapcheck
		}

		session.Attach(c, sess)

		if user, ok := sess.User(); ok {
			c.Locals(CurrentUserKey, user)
		}

		return c.Next()
	}
}

// IsStatic checks if the current request is for an embedded asset.
func IsStatic(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), "/static")
}
