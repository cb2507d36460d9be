package home

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postsportal/postsportal/internal/auth"
	authmw "github.com/postsportal/postsportal/internal/web/middleware/auth"
)

var testTemplates = fstest.MapFS{
	"layouts/base.gohtml": {Data: []byte(`<title>{{.Navigation.PageTitle}}</title>{{embed}}`)},
	"home.gohtml": {Data: []byte(
		`{{if .Session}}user={{.Navigation.DisplayName}}{{else}}anonymous{{end}}|{{.Pretty}}`,
	)},
}

func render(t *testing.T, user auth.TokenPayload) string {
	t.Helper()

	app := fiber.New(fiber.Config{Views: html.NewFileSystem(http.FS(testTemplates), ".gohtml")})
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(authmw.CurrentUserKey, user)
		}

		return c.Next()
	})

	New().Init(app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestGet_Anonymous(t *testing.T) {
	assert.Equal(t, "<title>Home</title>anonymous|null", render(t, nil))
}

func TestGet_Authenticated(t *testing.T) {
	body := render(t, auth.TokenPayload{"userinfo": map[string]any{"name": "Jane Doe"}})

	assert.Contains(t, body, "user=Jane Doe|")
	assert.Contains(t, body, "&#34;userinfo&#34;: {")
}

func TestPretty(t *testing.T) {
	got, err := Pretty(auth.TokenPayload{
		"token_type": "Bearer",
		"userinfo":   map[string]any{"name": "Jane Doe"},
	})
	require.NoError(t, err)

	assert.Equal(t, `{
    "token_type": "Bearer",
    "userinfo": {
        "name": "Jane Doe"
    }
}`, got)

	got, err = Pretty(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", got)
}
