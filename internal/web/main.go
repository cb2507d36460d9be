// Package web assembles the fiber application: middleware, session store,
// templates and the page handlers.
package web

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"

	"github.com/postsportal/postsportal/internal/auth"
	"github.com/postsportal/postsportal/internal/config"
	fiberlogger "github.com/postsportal/postsportal/internal/logger/adapter/fiber"
	"github.com/postsportal/postsportal/internal/web/handler"
	oidchandler "github.com/postsportal/postsportal/internal/web/handler/auth/oidc"
	"github.com/postsportal/postsportal/internal/web/handler/dashboard"
	"github.com/postsportal/postsportal/internal/web/handler/home"
	"github.com/postsportal/postsportal/internal/web/handler/logout"
	postshandler "github.com/postsportal/postsportal/internal/web/handler/posts"
	authmw "github.com/postsportal/postsportal/internal/web/middleware/auth"
	"github.com/postsportal/postsportal/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while serving and 503 during graceful shutdown.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"

	cookieKeyInfo = "postsportal cookie encryption"
	cookieKeySize = 32
)

// Dependencies are the collaborators the web service is built from.
type Dependencies struct {
	IdentityProvider auth.IdentityProvider
	Posts            postshandler.Source
	Storage          fiber.Storage
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the web service.
func New(cfg *config.Config, deps Dependencies) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if deps.IdentityProvider == nil || deps.Posts == nil || deps.Storage == nil {
		panic("web dependencies cannot be nil")
	}

	templateEngine := html.NewFileSystem(templateFS(), ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        appName(cfg),
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   errorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode || cfg.Webserver.ShutDownTime == 0,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: CookieKey(cfg.Webserver.SecretKey),
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	store := session.NewStore(deps.Storage, session.Config{
		Expiration: cfg.Session.ExpiryTime,
		Secure:     strings.HasPrefix(cfg.Webserver.URL, "https://"),
	})

	app.Use(authmw.New(store))

	services := []handler.Service{
		home.New(),
		oidchandler.New(cfg, deps.IdentityProvider),
		logout.New(cfg),
		dashboard.New(),
		postshandler.New(deps.Posts),
	}

	for _, svc := range services {
		svc.Init(app)
	}

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// CookieKey derives the base64 encoded cookie encryption key from the
// application secret.
func CookieKey(secret string) string {
	key := make([]byte, cookieKeySize)

	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(cookieKeyInfo)), key); err != nil {
		panic(err)
	}

	return base64.StdEncoding.EncodeToString(key)
}

// errorHandler answers with the status of a *fiber.Error and a generic 500
// for everything else. Details stay in the log.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := http.StatusText(code)

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(code).SendString(message)
}

func appName(cfg *config.Config) string {
	if cfg.Title != "" {
		return cfg.Title
	}

	return cfg.Log.AppName
}
