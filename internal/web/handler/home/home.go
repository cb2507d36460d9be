// Package home provides the landing page showing the session's user.
package home

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/postsportal/postsportal/internal/auth"
	"github.com/postsportal/postsportal/internal/web/handler"
	authmw "github.com/postsportal/postsportal/internal/web/middleware/auth"
	"github.com/postsportal/postsportal/internal/web/navigation"
)

const (
	// Path is the path of the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "home"

	prettyIndent = "    "
)

// Service is the home page handler service.
type Service struct{}

// New creates the home page handler.
func New() *Service {
	return &Service{}
}

// Init registers the home route.
func (s *Service) Init(app *fiber.App) {
	if app == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	app.Get(Path, s.Get)
}

// Get renders the stored token payload and its indented JSON. Anonymous
// sessions render with no user and "null".
func (s *Service) Get(c *fiber.Ctx) error {
	user, _ := c.Locals(authmw.CurrentUserKey).(auth.TokenPayload)

	pretty, err := Pretty(user)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Home", navigation.PageHome).WithUser(user)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Session":    user,
		"Pretty":     pretty,
	}, handler.BaseLayout)
}

// Pretty returns user as JSON indented by four spaces.
func Pretty(user auth.TokenPayload) (string, error) {
	raw, err := json.MarshalIndent(user, "", prettyIndent)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return string(raw), nil
}
