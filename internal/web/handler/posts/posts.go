// Package posts provides the JSON endpoint proxying the upstream posts API.
package posts

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/postsportal/postsportal/internal/posts"
	"github.com/postsportal/postsportal/internal/web/handler"
)

// Path is the path of the posts endpoint.
const Path = handler.RootPath + "posts"

// Source returns the current posts, an empty slice when there are none or
// the upstream failed.
type Source interface {
	GetPosts(ctx context.Context) []posts.Post
}

// Service is the posts handler service.
type Service struct {
	source Source
}

// New creates the posts handler.
func New(source Source) *Service {
	return &Service{source: source}
}

// Init registers the posts route.
func (s *Service) Init(app *fiber.App) {
	if app == nil || s.source == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	app.Get(Path, s.Get)
}

// Get answers with the posts as a JSON array. It does not require a login.
func (s *Service) Get(c *fiber.Ctx) error {
	list := s.source.GetPosts(c.UserContext())
	if list == nil {
		list = []posts.Post{}
	}

	return c.JSON(list)
}
