package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/database"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppName:        "devconnector-test",
		Env:            "test",
		DatabaseDriver: "sqlite",
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		JWTSecret:      "test_jwt_secret",
		JWTTTL:         time.Hour,
	}
}

func TestNewApp_HealthAndMetrics(t *testing.T) {
	cfg := testConfig(t)
	db, err := database.Open(cfg)
	require.NoError(t, err)

	app := newApp(cfg, db, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `"status":"healthy"`)
	assert.Contains(t, string(body), `"events":false`)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/all", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "devconnector_http_requests_total")
}

func TestNewApp_ProtectedRoutesRequireToken(t *testing.T) {
	cfg := testConfig(t)
	db, err := database.Open(cfg)
	require.NoError(t, err)

	app := newApp(cfg, db, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/current"},
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/profile"},
		{http.MethodDelete, "/api/profile"},
		{http.MethodPost, "/api/profile/experience"},
		{http.MethodDelete, "/api/profile/experience/abc"},
	} {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		resp.Body.Close()
	}
}
