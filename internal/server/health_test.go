package server

import (
	"net/http"
	"testing"

	"labook/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestLivenessCheck(t *testing.T) {
	_, app := newTestApp(t, nil, new(MockUserRepository), new(MockPostRepository))

	status, body := doJSON(t, app, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["status"])
}

func TestReadinessCheck_Unavailable(t *testing.T) {
	_, app := newTestApp(t, nil, new(MockUserRepository), new(MockPostRepository))

	status, body := doJSON(t, app, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "unavailable", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
}

func TestReadinessCheck_Healthy(t *testing.T) {
	cfg := testConfig()
	db, err := database.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	app := s.NewApp()

	status, body := doJSON(t, app, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	mr.Close()
	status, body = doJSON(t, app, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unhealthy", checks["redis"])

	require.NoError(t, s.Shutdown(t.Context()))
}

func TestNewServerWithDeps_RequiresDeps(t *testing.T) {
	_, err := NewServerWithDeps(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewServerWithDeps(testConfig(), nil, nil)
	assert.Error(t, err)
}
