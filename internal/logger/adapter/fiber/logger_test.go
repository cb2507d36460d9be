package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/postsportal/postsportal/internal/logger/adapter/fiber"

	"github.com/postsportal/postsportal/internal/logger"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

var consoleJSON = logger.Log{
	EnableAccessLogToConsole: true,
	DisableCheckAlive:        true,
	Console:                  logger.Console{Enabled: true},
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "no writer no output",
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			config:     adapter.Config{Config: consoleJSON},
			targetPath: "/",
			want:       &accessLine{IP: "0.0.0.0", Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "query string is kept",
			config:     adapter.Config{Config: consoleJSON},
			targetPath: "/posts?page=2",
			want:       &accessLine{IP: "0.0.0.0", Status: 200, URI: "/posts?page=2", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown route",
			config:     adapter.Config{Config: consoleJSON},
			targetPath: "/nope",
			want: &accessLine{
				IP: "0.0.0.0", Status: 404, URI: "/nope", Method: fiber.MethodGet, Host: "example.com",
				Error: "Cannot GET /nope",
			},
		},
		{
			name:       "handler error is logged with final status",
			config:     adapter.Config{Config: consoleJSON},
			targetPath: "/callback",
			want: &accessLine{
				IP: "0.0.0.0", Status: 500, URI: "/callback", Method: fiber.MethodGet, Host: "example.com",
				Error: "exchange failed",
			},
		},
		{
			name:       "checkalive is skipped",
			config:     adapter.Config{Config: consoleJSON},
			targetPath: "/checkalive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testMiddlewareHelper(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, *tt.want, got)
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) string {
	t.Helper()

	stdout := os.Stdout

	r, w, _ := os.Pipe()
	os.Stdout = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("hello test")
	})
	app.Get("/posts", func(c *fiber.Ctx) error {
		return c.JSON([]string{})
	})
	app.Get("/callback", func(_ *fiber.Ctx) error {
		return errors.New("exchange failed") //nolint:goerr113
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout

	return <-outC
}
