package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires a Server against a fresh in-memory SQLite database
// and returns the Fiber app with all routes registered. Rate limiting is
// bypassed via APP_ENV=test.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		JWTSecret:        "test-secret-for-access-tokens",
		JWTRefreshSecret: "test-secret-for-refresh-tokens",
		Env:              "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)

	return srv, app
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %v", body)
	return data
}

// registerAdmin creates the admin account directly through the service layer.
func registerAdmin(t *testing.T, srv *Server) {
	t.Helper()
	_, err := srv.authService.Register(context.Background(), adminCredentials())
	require.NoError(t, err)
}

func adminCredentials() service.RegisterInput {
	return service.RegisterInput{
		Username: "admin",
		Email:    "admin@folio.dev",
		Password: "SecurePass12!@",
	}
}

// loginAdmin registers (if needed) and logs in, returning the bearer token.
func loginAdmin(t *testing.T, srv *Server, app *fiber.App) string {
	t.Helper()
	registerAdmin(t, srv)

	creds := adminCredentials()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    creds.Email,
		"password": creds.Password,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := dataField(t, decodeBody(t, resp))
	token, _ := data["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}
