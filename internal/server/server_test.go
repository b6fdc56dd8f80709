package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"labook/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, authHeader string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

// TestScenario_SignupLoginPostAndFetch covers signing up twice with the same
// email, logging in, a rejected and an accepted post, and an anonymous read.
func TestScenario_SignupLoginPostAndFetch(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	s, app := newTestApp(t, nil, userRepo, postRepo)

	var stored *models.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.User) }).
		Return(nil).Once()
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(models.NewConflictError("'email' already registered")).Once()

	signup := map[string]string{"name": "Ana", "email": "ana@example.com", "password": "123456"}

	status, body := doJSON(t, app, http.MethodPost, "/user/signup", signup, "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Success!", body["message"])
	assert.NotEmpty(t, body["token"])
	require.NotNil(t, stored)
	assert.NotEqual(t, "123456", stored.Password)

	status, body = doJSON(t, app, http.MethodPost, "/user/signup", signup, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "'email' already registered", body["error"])
	assert.Equal(t, models.CodeConflict, body["code"])

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)
	status, body = doJSON(t, app, http.MethodPost, "/user/login",
		map[string]string{"email": "ana@example.com", "password": "123456"}, "")
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	subject, err := s.tokens.GetTokenData(token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, subject)

	status, body = doJSON(t, app, http.MethodPost, "/post/create",
		map[string]string{"photo": "https://img/1.png", "description": ""}, "Bearer "+token)
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, models.CodeValidation, body["code"])

	var created *models.Post
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.Post) }).
		Return(nil).Once()
	status, _ = doJSON(t, app, http.MethodPost, "/post/create",
		map[string]string{"photo": "https://img/1.png", "description": "hello"}, "Bearer "+token)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, created)
	assert.Equal(t, stored.ID, created.AuthorID)
	assert.Equal(t, models.PostTypeNormal, created.Type)

	fetched := *created
	fetched.AuthorName = stored.Name
	postRepo.On("GetByID", mock.Anything, created.ID).Return(&fetched, nil)
	status, body = doJSON(t, app, http.MethodGet, "/post/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, status)
	post, ok := body["post"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, created.ID, post["id"])
	assert.Equal(t, "hello", post["description"])
	assert.Equal(t, "Ana", post["author_name"])

	userRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	_, app := newTestApp(t, nil, new(MockUserRepository), new(MockPostRepository))

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/user/friend/u-2"},
		{http.MethodPost, "/post/create"},
		{http.MethodGet, "/post/feed"},
		{http.MethodGet, "/post/feed/EVENT"},
		{http.MethodPost, "/post/like/p-1"},
		{http.MethodPost, "/post/comment/p-1"},
	}
	headers := []string{"", "Bearer", "Bearer not-a-jwt", "garbage"}

	for _, r := range routes {
		for _, h := range headers {
			status, body := doJSON(t, app, r.method, r.path, nil, h)
			assert.Equal(t, http.StatusUnauthorized, status, "%s %s with %q", r.method, r.path, h)
			assert.Equal(t, "Invalid credentials", body["error"])
			assert.Equal(t, models.CodeUnauthorized, body["code"])
		}
	}
}

func TestRawTokenWithoutSchemeIsAccepted(t *testing.T) {
	postRepo := new(MockPostRepository)
	s, app := newTestApp(t, nil, new(MockUserRepository), postRepo)

	postRepo.On("GetFeed", mock.Anything, "u-1", 5, 0).Return([]models.Post{}, nil)

	raw := bearer(t, s, "u-1")[len("Bearer "):]
	status, body := doJSON(t, app, http.MethodGet, "/post/feed", nil, raw)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["posts"])
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	_, app := newTestApp(t, nil, new(MockUserRepository), new(MockPostRepository))

	status, body := doJSON(t, app, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}
