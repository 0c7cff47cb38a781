package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaard/database"
)

func call(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_AllChecksPass(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "kaard.db"))
	require.NoError(t, err)

	code, body := call(t, NewHealthCtrl(db, map[string]Pinger{
		"farm_api": PingFunc(func(context.Context) error { return nil }),
	}))

	assert.Equal(t, http.StatusOK, code)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, true, checks["database"].(map[string]any)["ok"])
	assert.Equal(t, true, checks["farm_api"].(map[string]any)["ok"])
}

func TestHealth_FailingDependencyIs503(t *testing.T) {
	code, body := call(t, NewHealthCtrl(nil, map[string]Pinger{
		"redis": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	checks := body["checks"].(map[string]any)
	assert.NotContains(t, checks, "database")
	assert.Equal(t, "connection refused", checks["redis"].(map[string]any)["err"])
}
