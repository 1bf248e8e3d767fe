package routes_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/campusmart/internal/config"
	"github.com/example/campusmart/internal/routes"
	"github.com/example/campusmart/internal/ws"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:    "routes-test-secret",
		TokenExpires: time.Hour,
		UploadDir:    t.TempDir(),
	}

	app := fiber.New()
	routes.Register(app, nil, cfg, ws.NewHub())
	return app
}

// Item detail is browsable without a session. A malformed id must reach the
// handler and fail its uuid parse, not get bounced by the auth guard.
func TestItemDetailIsPublic(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/items/not-a-uuid", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLostFoundDetailIsPublic(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/lost-found/not-a-uuid", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/api/items/"},
		{fiber.MethodGet, "/api/items/my-items"},
		{fiber.MethodGet, "/api/items/my-listings"},
		{fiber.MethodPut, "/api/items/11111111-1111-1111-1111-111111111111"},
		{fiber.MethodDelete, "/api/items/11111111-1111-1111-1111-111111111111"},
		{fiber.MethodPatch, "/api/items/11111111-1111-1111-1111-111111111111/status"},
		{fiber.MethodPost, "/api/lost-found/"},
		{fiber.MethodPatch, "/api/lost-found/11111111-1111-1111-1111-111111111111/resolve"},
		{fiber.MethodDelete, "/api/lost-found/11111111-1111-1111-1111-111111111111"},
		{fiber.MethodGet, "/api/users/profile"},
		{fiber.MethodGet, "/api/users/wishlist"},
		{fiber.MethodPost, "/api/users/wishlist/11111111-1111-1111-1111-111111111111"},
		{fiber.MethodPost, "/api/chat/"},
		{fiber.MethodGet, "/api/chat/"},
		{fiber.MethodPost, "/api/message/"},
		{fiber.MethodGet, "/api/message/11111111-1111-1111-1111-111111111111"},
		{fiber.MethodPost, "/api/upload"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
