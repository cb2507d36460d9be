package config

import (
	"time"

	"github.com/postsportal/postsportal/internal/logger"
)

// Session storage backends.
const (
	StorageMemory   = "memory"
	StorageMySQL    = "mysql"
	StoragePostgres = "postgres"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Webserver Webserver
	Auth      Auth
	RapidAPI  RapidAPI
	Session   Session
	Log       logger.Log
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	DisableRecover bool   // disable recover middleware
	Port           int    `validate:"min=1,max=65535"`
	ShutDownTime   int    `validate:"min=0"`             // seconds /checkalive reports 503 before shutdown
	URL            string `validate:"omitempty,url"`     // external base url, derived per request when empty
	SecretKey      string `json:"-" validate:"required"` // APP_SECRET_KEY, seeds the cookie encryption key
}

// Auth holds the identity provider trust parameters. They are checked when
// a login starts, not at startup.
type Auth struct {
	Domain       string
	ClientID     string
	ClientSecret string `json:"-"`
	IssuerURL    string `validate:"omitempty,url"` // overrides https://{Domain}/
}

// RapidAPI holds the content proxy target and credentials.
type RapidAPI struct {
	Key      string `json:"-"`
	Host     string
	Endpoint string `validate:"omitempty,url"`
}

// Session settings.
type Session struct {
	Storage    string        `validate:"oneof=memory mysql postgres"`
	StorageURI string        `json:"-" validate:"required_unless=Storage memory"`
	ExpiryTime time.Duration `validate:"gt=0"`
}
