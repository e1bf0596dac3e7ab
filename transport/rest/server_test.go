package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/threeinarow-relay/internal/usecase"
)

type fixedStats usecase.Stats

func (that fixedStats) Stats() usecase.Stats {
	return usecase.Stats(that)
}

func newTestHandler(stats usecase.Stats) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return New(logger, fixedStats(stats)).Handler()
}

func TestServer_Ping(t *testing.T) {
	handler := newTestHandler(usecase.Stats{})

	t.Run("GET", func(t *testing.T) {
		// Given: a ping request
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()

		// When: it is served
		handler.ServeHTTP(rec, req)

		// Then: the server answers pong
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestServer_Stats(t *testing.T) {
	// Given: a relay with one open and two playing sessions
	handler := newTestHandler(usecase.Stats{Open: 1, Playing: 2, Clients: 5})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	// When: stats are requested
	handler.ServeHTTP(rec, req)

	// Then: they are reported as JSON
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"open":1,"playing":2,"clients":5}`, rec.Body.String())
}
