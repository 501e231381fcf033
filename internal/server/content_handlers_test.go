package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentUpsertAndPublicRead(t *testing.T) {
	srv, app := setupTestServer(t)
	token := loginAdmin(t, srv, app)

	req := jsonRequest(t, http.MethodPost, "/api/content", fiber.Map{
		"section": "hero",
		"data":    fiber.Map{"name": "Ada", "title": "Engineer"},
	})
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Anyone can read what the admin wrote.
	read, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/content/hero", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, read.StatusCode)

	content := dataField(t, decodeBody(t, read))["content"].(map[string]any)
	assert.Equal(t, "hero", content["section"])
	data := content["data"].(map[string]any)
	assert.Equal(t, "Ada", data["name"])
}

func TestContentNeverWrittenSectionIsEmptyNot404(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/content/about", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	content := dataField(t, decodeBody(t, resp))["content"].(map[string]any)
	assert.Equal(t, "about", content["section"])
	assert.Empty(t, content["data"].(map[string]any))
}

func TestContentUnknownSectionIs400(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/content/blog", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestContentWriteRequiresAdmin(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/content", fiber.Map{
		"section": "hero",
		"data":    fiber.Map{"name": "Mallory"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestContentDelete(t *testing.T) {
	srv, app := setupTestServer(t)
	token := loginAdmin(t, srv, app)

	write := jsonRequest(t, http.MethodPost, "/api/content", fiber.Map{
		"section": "contact",
		"data":    fiber.Map{"email": "ada@folio.dev"},
	})
	write.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(write)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	del := httptest.NewRequest(http.MethodDelete, "/api/content/contact", nil)
	del.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(del)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Back to the empty document once deleted.
	read, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/content/contact", nil))
	require.NoError(t, err)
	content := dataField(t, decodeBody(t, read))["content"].(map[string]any)
	assert.Empty(t, content["data"].(map[string]any))
}
