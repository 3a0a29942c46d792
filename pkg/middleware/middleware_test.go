package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"lessonplan/pkg/logger"
)

func newServer(t *testing.T) (*echo.Echo, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	e := echo.New()
	e.Use(RequestID(), RequestLog(log))
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})
	return e, logs
}

func TestRequestIDGenerated(t *testing.T) {
	e, logs := newServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	rid := rec.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, rec.Body.String())

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, rid, entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
}

func TestRequestIDPropagated(t *testing.T) {
	e, _ := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestRequestLogErrorLevel(t *testing.T) {
	e, logs := newServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.EqualValues(t, http.StatusInternalServerError, entries[0].ContextMap()["status"])
}
