package validation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRequest struct{}

func (noteRequest) Authorize(c *fiber.Ctx) bool {
	return c.Get("X-Allow") == "yes"
}

func (noteRequest) Rules(*fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("title", validation.Required(), validation.String(), validation.Max(20)),
	}
}

func noteApp() *fiber.App {
	v := validation.New(nil)
	app := fiber.New()
	app.Post("/notes", v.Middleware(noteRequest{}), func(c *fiber.Ctx) error {
		in := validation.Validated(c)
		return c.JSON(fiber.Map{"title": in.String("title"), "fields": len(in)})
	})
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestMiddleware_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := noteApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "This action is unauthorized.", body["message"])
	assert.Nil(t, body["first_error"])
}

func TestMiddleware_ValidationFailed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Allow", "yes")

	resp, err := noteApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, "The title field is required.", body["first_error"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "title")
}

func TestMiddleware_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Allow", "yes")

	resp, err := noteApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decode(t, resp)["message"])
}

func TestMiddleware_PassesValidatedInput(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/notes?extra=1", strings.NewReader(`{"title":"  hello ","ignored":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Allow", "yes")

	resp, err := noteApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "hello", body["title"])
	assert.Equal(t, float64(1), body["fields"])
}
