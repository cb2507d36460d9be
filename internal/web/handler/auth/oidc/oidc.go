package oidc

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/postsportal/postsportal/internal/auth"
	"github.com/postsportal/postsportal/internal/config"
	"github.com/postsportal/postsportal/internal/web/handler"
	"github.com/postsportal/postsportal/internal/web/session"
)

const (
	// LoginPath is the path to initiate the OIDC login.
	LoginPath = handler.RootPath + "login"

	// CallbackPath is the path the provider redirects back to.
	CallbackPath = handler.RootPath + "callback"
)

// Service is the OIDC login handler service.
type Service struct {
	cfg *config.Config
	idp auth.IdentityProvider
}

// New creates the login handler.
func New(cfg *config.Config, idp auth.IdentityProvider) *Service {
	return &Service{cfg: cfg, idp: idp}
}

// Init registers the login and callback routes.
func (s *Service) Init(app *fiber.App) {
	if app == nil || s.cfg == nil || s.idp == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)
	app.Post(CallbackPath, s.Callback)
}

// CallbackURL is the redirect URI sent to the provider.
func (s *Service) CallbackURL(c *fiber.Ctx) string {
	return handler.ExternalURL(c, s.cfg.Webserver.URL, CallbackPath)
}

// Login starts the authorization code flow and redirects to the provider.
func (s *Service) Login(c *fiber.Ctx) error {
	sess, err := session.FromContext(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	authURL, pending, err := s.idp.AuthorizationRedirect(c.UserContext(), s.CallbackURL(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to build authorization redirect")
		return err //nolint:wrapcheck
	}

	if err = sess.SetPending(pending); err != nil {
		return err //nolint:wrapcheck
	}

	if err = sess.Save(); err != nil {
		return err //nolint:wrapcheck
	}

	return c.Redirect(authURL)
}

// Callback redeems the authorization response and stores the token payload
// as the session user. On failure the error is returned unchanged and the
// session is left as it was.
func (s *Service) Callback(c *fiber.Ctx) error {
	sess, err := session.FromContext(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	pending, _ := sess.Pending()

	payload, err := s.idp.Exchange(c.UserContext(), pending, auth.CallbackParams{
		Code:             callbackParam(c, "code"),
		State:            callbackParam(c, "state"),
		Error:            callbackParam(c, "error"),
		ErrorDescription: callbackParam(c, "error_description"),
	})
	if err != nil {
		log.Error().Err(err).Msg("OIDC callback failed")
		return err //nolint:wrapcheck
	}

	sess.DeletePending()

	if err = sess.SetUser(payload); err != nil {
		return err //nolint:wrapcheck
	}

	if err = sess.Save(); err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Interface("sub", subject(payload)).Msg("user logged in via OIDC")

	return c.Redirect(handler.RootPath)
}

// callbackParam reads key from the query string, then from a form_post body.
func callbackParam(c *fiber.Ctx, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}

	return c.FormValue(key)
}

func subject(payload auth.TokenPayload) any {
	if claims, ok := payload["userinfo"].(map[string]any); ok {
		return claims["sub"]
	}

	return nil
}
