package server

import (
	"net/http"
	"testing"

	"labook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToggleFriend(t *testing.T) {
	userRepo := new(MockUserRepository)
	s, app := newTestApp(t, nil, userRepo, new(MockPostRepository))
	auth := bearer(t, s, "u-b")

	pair := models.NewFriendPair("u-a", "u-b")
	userRepo.On("GetByID", mock.Anything, "u-a").Return(&models.User{ID: "u-a"}, nil)
	userRepo.On("ToggleFriendship", mock.Anything, pair).Return(true, nil).Once()
	userRepo.On("ToggleFriendship", mock.Anything, pair).Return(false, nil).Once()

	status, body := doJSON(t, app, http.MethodPost, "/user/friend/u-a", nil, auth)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Success!", body["message"])
	assert.Equal(t, true, body["friends"])

	status, body = doJSON(t, app, http.MethodPost, "/user/friend/u-a", nil, auth)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["friends"])

	userRepo.AssertExpectations(t)
}

func TestToggleFriend_Self(t *testing.T) {
	s, app := newTestApp(t, nil, new(MockUserRepository), new(MockPostRepository))

	status, body := doJSON(t, app, http.MethodPost, "/user/friend/u-1", nil, bearer(t, s, "u-1"))
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, "Different 'id' must be provided", body["error"])
}

func TestSignupAndLogin_Validation(t *testing.T) {
	_, app := newTestApp(t, nil, new(MockUserRepository), new(MockPostRepository))

	status, body := doJSON(t, app, http.MethodPost, "/user/signup", map[string]string{"name": "Ana"}, "")
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, "'name', 'email' and 'password' must be provided", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/user/login", map[string]string{"email": "ana@example.com"}, "")
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, "'email' and 'password' must be provided", body["error"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	_, app := newTestApp(t, nil, userRepo, new(MockPostRepository))

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	status, body := doJSON(t, app, http.MethodPost, "/user/login",
		map[string]string{"email": "nobody@example.com", "password": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])
}
