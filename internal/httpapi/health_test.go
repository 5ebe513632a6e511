package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/testutil"
)

type downStore struct{ err error }

func (d downStore) Ping(context.Context) error { return d.err }

func TestHealth_StoreDownHidesDriverError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	driverErr := errors.New(`dial tcp 10.0.0.7:5432: password authentication failed for user "peula"`)
	h := NewHealthHandler(downStore{err: driverErr}, testutil.NewFakeLLM(), logger.FromZap(zap.New(core)))

	r := gin.New()
	r.GET("/healthz", h.Health)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
	assert.NotContains(t, rec.Body.String(), "password")
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unreachable", body["store"])

	entries := logs.FilterMessage("health check: store ping failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, driverErr.Error(), entries[0].ContextMap()["error"])
}
