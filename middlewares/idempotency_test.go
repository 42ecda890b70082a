package middlewares

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voiceleads-backend/database"
	"voiceleads-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newIdempotencyDB(t *testing.T, name string) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.IdempotencyKey{}))
	database.DB = db
}

func newIdempotencyApp(role string, handlerCalls *int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/guarded", func(c *fiber.Ctx) error {
		c.Locals("userID", "user-1")
		c.Locals("workspaceID", "ws-1")
		c.Locals("role", c.Get("X-Test-Role", role))
		return c.Next()
	}, RequireAction(models.ActionWrite), Idempotency(), func(c *fiber.Ctx) error {
		*handlerCalls++
		return c.JSON(fiber.Map{"call": *handlerCalls})
	})
	return app
}

func post(t *testing.T, app *fiber.App, key, body string, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/guarded", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	newIdempotencyDB(t, "idem_replay")
	calls := 0
	app := newIdempotencyApp(models.RoleMember, &calls)

	resp1, body1 := post(t, app, "key-1", `{"v":1}`, nil)
	assert.Equal(t, http.StatusOK, resp1.StatusCode)
	assert.Equal(t, 1, calls)

	// Same key + same request replays the stored response; handler not re-run.
	resp2, body2 := post(t, app, "key-1", `{"v":1}`, nil)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, body1, body2)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyRejectsKeyReuseWithDifferentRequest(t *testing.T) {
	newIdempotencyDB(t, "idem_reuse")
	calls := 0
	app := newIdempotencyApp(models.RoleMember, &calls)

	resp1, _ := post(t, app, "key-1", `{"v":1}`, nil)
	assert.Equal(t, http.StatusOK, resp1.StatusCode)

	resp2, body2 := post(t, app, "key-1", `{"v":2}`, nil)
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)
	assert.Contains(t, body2, "Idempotency-Key")
	assert.Equal(t, 1, calls)
}

func TestIdempotencyKeylessRequestsRunIndependently(t *testing.T) {
	newIdempotencyDB(t, "idem_keyless")
	calls := 0
	app := newIdempotencyApp(models.RoleMember, &calls)

	post(t, app, "", `{"v":1}`, nil)
	post(t, app, "", `{"v":1}`, nil)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyReplayDoesNotBypassRoleCheck(t *testing.T) {
	newIdempotencyDB(t, "idem_role")
	calls := 0
	app := newIdempotencyApp(models.RoleMember, &calls)

	resp1, _ := post(t, app, "key-1", `{"v":1}`, nil)
	assert.Equal(t, http.StatusOK, resp1.StatusCode)
	assert.Equal(t, 1, calls)

	// A caller downgraded to VIEWER must get 403, not the stored response.
	resp2, _ := post(t, app, "key-1", `{"v":1}`, map[string]string{"X-Test-Role": models.RoleViewer})
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
	assert.Equal(t, 1, calls)
}
