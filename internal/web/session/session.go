// Package session keeps the per-browser session: the authenticated user's
// token payload and the login attempt in flight.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/postsportal/postsportal/internal/auth"
)

const (
	// CookieName is the name of the session id cookie.
	CookieName = "session"

	userKey    = "user"
	pendingKey = "oidc_pending"
	localsKey  = "session"
)

// ErrNoSession is returned by FromContext when no session was attached to the request.
var ErrNoSession = errors.New("no session attached to request")

// Config holds the session cookie settings.
type Config struct {
	// Expiration is how long the storage keeps an unused session.
	Expiration time.Duration
	// Secure marks the cookie https only.
	Secure bool
}

// Store hands out per-request sessions backed by a fiber storage.
type Store struct {
	store *session.Store
}

// NewStore creates a Store. The session cookie lives until the browser is closed.
func NewStore(storage fiber.Storage, cfg Config) *Store {
	if storage == nil {
		panic("storage is nil")
	}

	return &Store{
		store: session.New(session.Config{
			Storage:           storage,
			Expiration:        cfg.Expiration,
			KeyLookup:         "cookie:" + CookieName,
			CookieSecure:      cfg.Secure,
			CookieHTTPOnly:    true,
			CookieSameSite:    fiber.CookieSameSiteLaxMode,
			CookieSessionOnly: true,
		}),
	}
}

// Get loads the session of the request, creating an empty one if needed.
func (s *Store) Get(c *fiber.Ctx) (*Session, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Session{sess: sess}, nil
}

// Attach stores sess in the request locals for FromContext.
func Attach(c *fiber.Ctx, sess *Session) {
	c.Locals(localsKey, sess)
}

// FromContext returns the session attached to the request.
func FromContext(c *fiber.Ctx) (*Session, error) {
	sess, ok := c.Locals(localsKey).(*Session)
	if !ok || sess == nil {
		return nil, ErrNoSession
	}

	return sess, nil
}

// Session is the session of one request. It must not be used after Save.
type Session struct {
	sess *session.Session
}

// User returns the stored token payload, or false for an anonymous session.
func (s *Session) User() (auth.TokenPayload, bool) {
	var user auth.TokenPayload
	if !s.decode(userKey, &user) || user == nil {
		return nil, false
	}

	return user, true
}

// SetUser stores payload as the authenticated user.
func (s *Session) SetUser(payload auth.TokenPayload) error {
	return s.encode(userKey, payload)
}

// Pending returns the login attempt started by this browser, if any.
func (s *Session) Pending() (auth.PendingRequest, bool) {
	var pending auth.PendingRequest
	if !s.decode(pendingKey, &pending) {
		return auth.PendingRequest{}, false
	}

	return pending, true
}

// SetPending records a started login attempt.
func (s *Session) SetPending(pending auth.PendingRequest) error {
	return s.encode(pendingKey, pending)
}

// DeletePending forgets the login attempt.
func (s *Session) DeletePending() {
	s.sess.Delete(pendingKey)
}

// Save persists the session and sets the session cookie.
func (s *Session) Save() error {
	return s.sess.Save() //nolint:wrapcheck
}

// Destroy removes all session data from storage and expires the cookie.
func (s *Session) Destroy() error {
	return s.sess.Destroy() //nolint:wrapcheck
}

// values are kept as JSON strings so the gob encoding of the fiber session
// never has to know about the payload's dynamic types.
func (s *Session) encode(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.sess.Set(key, string(raw))

	return nil
}

func (s *Session) decode(key string, v any) bool {
	raw, ok := s.sess.Get(key).(string)
	if !ok || raw == "" {
		return false
	}

	return json.Unmarshal([]byte(raw), v) == nil
}
