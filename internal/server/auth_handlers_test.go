package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	_, app := setupTestServer(t)

	t.Run("First registration succeeds", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
			"username": "admin",
			"email":    "admin@folio.dev",
			"password": "SecurePass12!@",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "success", body["status"])
		user := dataField(t, body)["user"].(map[string]any)
		assert.Equal(t, "admin", user["role"])
		assert.NotContains(t, user, "password")
	})

	t.Run("Second registration is closed", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
			"username": "intruder",
			"email":    "intruder@folio.dev",
			"password": "SecurePass12!@",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "fail", decodeBody(t, resp)["status"])
	})
}

func TestRegister_ValidationErrors(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"username": "x",
		"email":    "nope",
		"password": "short",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "fail", body["status"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 3)
}

func TestLogin(t *testing.T) {
	srv, app := setupTestServer(t)
	registerAdmin(t, srv)

	t.Run("Success sets refresh cookie", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "admin@folio.dev",
			"password": "SecurePass12!@",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		data := dataField(t, decodeBody(t, resp))
		assert.NotEmpty(t, data["accessToken"])
		assert.NotContains(t, data, "refreshToken", "refresh token must never be in the body")

		cookie := findCookie(resp, refreshCookieName)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.NotEmpty(t, cookie.Value)
	})

	t.Run("Wrong password and unknown email are identical", func(t *testing.T) {
		wrongPw, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "admin@folio.dev",
			"password": "WrongPass12!@",
		}))
		require.NoError(t, err)
		unknown, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "ghost@folio.dev",
			"password": "SecurePass12!@",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		assert.Equal(t, decodeBody(t, wrongPw)["message"], decodeBody(t, unknown)["message"])
	})
}

func TestRefresh(t *testing.T) {
	srv, app := setupTestServer(t)
	registerAdmin(t, srv)

	login, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "admin@folio.dev",
		"password": "SecurePass12!@",
	}))
	require.NoError(t, err)
	cookie := findCookie(login, refreshCookieName)
	require.NotNil(t, cookie)

	t.Run("Valid cookie rotates the pair", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.AddCookie(cookie)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		data := dataField(t, decodeBody(t, resp))
		assert.NotEmpty(t, data["accessToken"])

		rotated := findCookie(resp, refreshCookieName)
		require.NotNil(t, rotated)
		assert.NotEqual(t, cookie.Value, rotated.Value)
	})

	t.Run("Missing cookie", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout_ClearsCookie(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := findCookie(resp, refreshCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestMe(t *testing.T) {
	srv, app := setupTestServer(t)
	token := loginAdmin(t, srv, app)

	t.Run("With token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		user := dataField(t, decodeBody(t, resp))["user"].(map[string]any)
		assert.Equal(t, "admin@folio.dev", user["email"])
	})

	t.Run("Without token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
