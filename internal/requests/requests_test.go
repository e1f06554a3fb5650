package requests_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradefeed/internal/requests"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPresenceVerifier is a mock implementation of validation.PresenceVerifier
type MockPresenceVerifier struct {
	mock.Mock
}

func (m *MockPresenceVerifier) Count(ctx context.Context, q validation.PresenceQuery) (int64, error) {
	args := m.Called(q)
	return args.Get(0).(int64), args.Error(1)
}

// newApp mounts req behind a stand-in for AuthRequired that trusts X-User.
func newApp(presence validation.PresenceVerifier, req validation.FormRequest) *fiber.App {
	v := validation.New(presence)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User"); id != "" {
			c.Locals("user_id", id)
		}
		return c.Next()
	})
	app.Post("/", v.Middleware(req), func(c *fiber.Ctx) error {
		return c.JSON(validation.Validated(c))
	})
	return app
}

func send(t *testing.T, app *fiber.App, user, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User", user)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestStoreComment(t *testing.T) {
	presence := new(MockPresenceVerifier)
	presence.On("Count", validation.PresenceQuery{Collection: "posts", Column: "id", Value: "p1"}).Return(int64(1), nil)
	app := newApp(presence, requests.StoreComment{})

	status, _ := send(t, app, "", `{"post_id":"p1","content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := send(t, app, "u1", `{"post_id":"p1","content":null,"media":null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"The content field is required when media is not present."}, errs["content"])
	assert.Equal(t, []any{"The media field is required when content is not present."}, errs["media"])
	assert.Equal(t, "The content field is required when media is not present.", body["first_error"])

	status, body = send(t, app, "u1", `{"post_id":"p1","content":"hi"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"post_id": "p1", "content": "hi"}, body)
}

func TestStoreComment_UnknownPost(t *testing.T) {
	presence := new(MockPresenceVerifier)
	presence.On("Count", validation.PresenceQuery{Collection: "posts", Column: "id", Value: "gone"}).Return(int64(0), nil)

	status, body := send(t, newApp(presence, requests.StoreComment{}), "u1", `{"post_id":"gone","content":"hi"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The selected post id is invalid.", body["first_error"])
}

func TestStorePost_ContentTooLong(t *testing.T) {
	app := newApp(nil, requests.StorePost{})

	status, body := send(t, app, "u1", `{"content":"`+strings.Repeat("a", 256)+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The content must not be greater than 255 characters.", body["first_error"])

	status, _ = send(t, app, "u1", `{"content":"`+strings.Repeat("a", 255)+`"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdateUser_UsernameUniqueIgnoresSelf(t *testing.T) {
	presence := new(MockPresenceVerifier)
	presence.On("Count", validation.PresenceQuery{
		Collection: "users", Column: "username", Value: "alice", IgnoreColumn: "id", IgnoreID: "u1",
	}).Return(int64(0), nil).Once()
	presence.On("Count", validation.PresenceQuery{
		Collection: "users", Column: "username", Value: "bob", IgnoreColumn: "id", IgnoreID: "u1",
	}).Return(int64(1), nil).Once()
	app := newApp(presence, requests.UpdateUser{})

	status, _ := send(t, app, "u1", `{"username":"alice"}`)
	assert.Equal(t, http.StatusOK, status)

	status, body := send(t, app, "u1", `{"username":"bob"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The username has already been taken.", body["first_error"])
	presence.AssertExpectations(t)
}

func TestUpdateUser_OmittedUsernameIsNotChecked(t *testing.T) {
	presence := new(MockPresenceVerifier)
	app := newApp(presence, requests.UpdateUser{})

	status, body := send(t, app, "u1", `{"bio":null,"firstname":"Al"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"bio": nil, "firstname": "Al"}, body)
	presence.AssertNotCalled(t, "Count", mock.Anything)
}

func TestToggleFollow(t *testing.T) {
	presence := new(MockPresenceVerifier)
	app := newApp(presence, requests.ToggleFollow{})

	status, body := send(t, app, "u1", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The user id field is required.", body["first_error"])
	presence.AssertNotCalled(t, "Count", mock.Anything)
}

func TestRegister(t *testing.T) {
	presence := new(MockPresenceVerifier)
	presence.On("Count", mock.Anything).Return(int64(0), nil)
	app := newApp(presence, requests.Register{})

	status, body := send(t, app, "", `{
		"username":"alice","email":"alice@example.com",
		"password":"secret123","password_confirmation":"secret124",
		"firstname":"Alice","lastname":"Liddell"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The password confirmation does not match.", body["first_error"])

	status, _ = send(t, app, "", `{
		"username":"alice","email":"alice@example.com",
		"password":"secret123","password_confirmation":"secret123",
		"firstname":"Alice","lastname":"Liddell"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestLogin(t *testing.T) {
	app := newApp(nil, requests.Login{})

	status, body := send(t, app, "", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The email must be a valid email address.", body["first_error"])
}
