package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-store-inventory/internal/middleware"
	"go-store-inventory/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFeedApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestApp(t)
	resolver := middleware.NewTokenResolver(testSecret, "session-token").WithQueryParam("token")
	feed := NewFeedHandler(ws.NewHub(zap.NewNop()), resolver)
	app.Get("/ws/items", feed.Upgrade, feed.Stream())
	return app
}

func TestFeedUpgrade_Rejections(t *testing.T) {
	app := newFeedApp(t)

	tests := []struct {
		name    string
		upgrade bool
		want    int
	}{
		{name: "plain http request", upgrade: false, want: http.StatusUpgradeRequired},
		{name: "upgrade without token", upgrade: true, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws/items", nil)
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
				req.Header.Set("Sec-WebSocket-Version", "13")
				req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
