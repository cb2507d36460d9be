// Package daemon wires the configured collaborators into the web service and runs it.
package daemon

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/postsportal/postsportal/internal/auth"
	"github.com/postsportal/postsportal/internal/config"
	"github.com/postsportal/postsportal/internal/posts"
	"github.com/postsportal/postsportal/internal/web"
)

const (
	sessionTable      = "sessions"
	storageGCInterval = 10 * time.Second
)

// ErrUnknownStorage is returned for an unsupported session storage backend.
var ErrUnknownStorage = errors.New("unknown session storage")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	storage    fiber.Storage
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM and then shuts down gracefully.
func (d *Daemon) Start() error {
	defer d.closeStorage()

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

func (d *Daemon) closeStorage() {
	if err := d.storage.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close session storage")
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	storage, err := NewSessionStorage(cfg.Session)
	if err != nil {
		return nil, err
	}

	if cfg.Auth.Domain == "" || cfg.Auth.ClientID == "" || cfg.Auth.ClientSecret == "" {
		log.Warn().Msg("AUTH0_DOMAIN, AUTH0_CLIENT_ID or AUTH0_CLIENT_SECRET is not set, /login will fail")
	}

	if cfg.RapidAPI.Endpoint == "" {
		log.Warn().Msg("RAPIDAPI_ENDPOINT is not set, /posts will answer []")
	}

	idp := auth.NewOIDCClient(auth.OIDCConfig{
		Domain:       cfg.Auth.Domain,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		IssuerURL:    cfg.Auth.IssuerURL,
	})

	source := posts.New(posts.Config{
		Endpoint: cfg.RapidAPI.Endpoint,
		APIKey:   cfg.RapidAPI.Key,
		APIHost:  cfg.RapidAPI.Host,
	}, nil)

	return &Daemon{
		cfg:     cfg,
		storage: storage,
		webService: web.New(cfg, web.Dependencies{
			IdentityProvider: idp,
			Posts:            source,
			Storage:          storage,
		}),
	}, nil
}

// NewSessionStorage opens the session storage backend. The SQL backends
// create their table on first use.
func NewSessionStorage(cfg config.Session) (fiber.Storage, error) {
	log.Info().Str("storage", cfg.Storage).Msg("opening session storage")

	switch cfg.Storage {
	case config.StorageMemory, "":
		return memory.New(memory.Config{GCInterval: storageGCInterval}), nil
	case config.StorageMySQL:
		return mysql.New(mysql.Config{
			ConnectionURI: cfg.StorageURI,
			Table:         sessionTable,
			GCInterval:    storageGCInterval,
		}), nil
	case config.StoragePostgres:
		return postgres.New(postgres.Config{
			ConnectionURI: cfg.StorageURI,
			Table:         sessionTable,
			GCInterval:    storageGCInterval,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStorage, cfg.Storage)
	}
}
