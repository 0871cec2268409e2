package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ad_generator_v1/internal/config"
	"ad_generator_v1/internal/router"
)

func TestInitDependencies_NoDatabase(t *testing.T) {
	cfg := config.Default()
	deps, err := initDependencies(cfg, zap.NewNop())
	require.NoError(t, err)
	defer deps.Close()

	assert.Nil(t, deps.DB)
	assert.Nil(t, deps.CallLogs)
	assert.NotNil(t, deps.Services.Ads)
	assert.NotNil(t, deps.Services.Health)

	gin.SetMode(gin.TestMode)
	r := router.NewEngine(zap.NewNop())
	router.InitRoutes(r, initControllers(deps, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/upstream", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitDependencies_SQLiteCallLog(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Enabled = true
	cfg.Database.DSN = ":memory:"

	deps, err := initDependencies(cfg, zap.NewNop())
	require.NoError(t, err)
	defer deps.Close()

	require.NotNil(t, deps.DB)
	require.NotNil(t, deps.CallLogs)

	gin.SetMode(gin.TestMode)
	r := router.NewEngine(zap.NewNop())
	router.InitRoutes(r, initControllers(deps, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/upstream", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInitDependencies_BadDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Enabled = true
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = ""

	_, err := initDependencies(cfg, zap.NewNop())
	assert.Error(t, err)
}
