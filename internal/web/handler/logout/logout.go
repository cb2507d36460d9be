// Package logout provides the handler ending the local session and the
// provider session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/postsportal/postsportal/internal/auth"
	"github.com/postsportal/postsportal/internal/config"
	"github.com/postsportal/postsportal/internal/web/handler"
	"github.com/postsportal/postsportal/internal/web/session"
)

// Path is the path of the logout route.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// New creates the logout handler.
func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Init registers the logout route.
func (s *Service) Init(app *fiber.App) {
	if app == nil || s.cfg == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	app.Get(Path, s.Logout)
}

// Logout clears the session and redirects to the provider's logout endpoint,
// which sends the browser back to the home page. Logging out an anonymous
// session is not an error.
func (s *Service) Logout(c *fiber.Ctx) error {
	sess, err := session.FromContext(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err = sess.Destroy(); err != nil {
		log.Error().Err(err).Msg("failed to destroy session")
		return err //nolint:wrapcheck
	}

	return c.Redirect(auth.FederatedLogoutURL(
		s.cfg.Auth.Domain,
		handler.ExternalURL(c, s.cfg.Webserver.URL, handler.RootPath),
		s.cfg.Auth.ClientID,
	))
}
