// Package dashboard provides the static dashboard page.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/postsportal/postsportal/internal/auth"
	"github.com/postsportal/postsportal/internal/web/handler"
	authmw "github.com/postsportal/postsportal/internal/web/middleware/auth"
	"github.com/postsportal/postsportal/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard"
)

// Service is the dashboard handler service.
type Service struct{}

// New creates the dashboard handler.
func New() *Service {
	return &Service{}
}

// Init registers the dashboard route. The page is public.
func (s *Service) Init(app *fiber.App) {
	if app == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	app.Get(Path, s.Get)
}

// Get renders the dashboard page.
func (s *Service) Get(c *fiber.Ctx) error {
	user, _ := c.Locals(authmw.CurrentUserKey).(auth.TokenPayload)

	nav := navigation.NewContext("Dashboard", navigation.PageDashboard).
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Dashboard", Path, true).
		WithUser(user)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
	}, handler.BaseLayout)
}
