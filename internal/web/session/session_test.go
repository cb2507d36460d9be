package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postsportal/postsportal/internal/auth"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := NewStore(memory.New(), Config{Expiration: time.Hour})
	app := fiber.New()

	app.Get("/set", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		if err = sess.SetPending(auth.PendingRequest{State: "st", Nonce: "no", RedirectURI: "http://x/callback"}); err != nil {
			return err
		}

		if err = sess.SetUser(auth.TokenPayload{"id_token": "tok", "userinfo": map[string]any{"name": "Jane"}}); err != nil {
			return err
		}

		return sess.Save()
	})

	app.Get("/get", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		user, ok := sess.User()
		pending, hasPending := sess.Pending()

		return c.JSON(fiber.Map{"user": user, "ok": ok, "pending": pending.State, "hasPending": hasPending})
	})

	app.Get("/destroy", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		return sess.Destroy()
	})

	return app
}

func do(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestSession_RoundTrip(t *testing.T) {
	app := newTestApp(t)

	_, body := do(t, app, "/get", nil)
	assert.JSONEq(t, `{"user":null,"ok":false,"pending":"","hasPending":false}`, body)

	resp, _ := do(t, app, "/set", nil)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Zero(t, cookies[0].MaxAge, "session cookie ends with the browser")

	_, body = do(t, app, "/get", cookies)
	assert.JSONEq(t,
		`{"user":{"id_token":"tok","userinfo":{"name":"Jane"}},"ok":true,"pending":"st","hasPending":true}`,
		body,
	)

	do(t, app, "/destroy", cookies)

	_, body = do(t, app, "/get", cookies)
	assert.JSONEq(t, `{"user":null,"ok":false,"pending":"","hasPending":false}`, body)
}

func TestFromContext(t *testing.T) {
	store := NewStore(memory.New(), Config{Expiration: time.Hour})
	app := fiber.New()

	app.Get("/missing", func(c *fiber.Ctx) error {
		_, err := FromContext(c)
		assert.ErrorIs(t, err, ErrNoSession)

		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Get("/attached", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		Attach(c, sess)

		got, err := FromContext(c)
		require.NoError(t, err)
		assert.Same(t, sess, got)

		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, _ := do(t, app, "/missing", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, "/attached", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestNewStore_NilStorage(t *testing.T) {
	assert.Panics(t, func() { NewStore(nil, Config{}) })
}
