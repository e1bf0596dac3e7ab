package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/threeinarow-relay/internal/usecase"
)

type statsSource interface {
	Stats() usecase.Stats
}

type statsHandler struct {
	logger *slog.Logger
	source statsSource
}

func newStatsHandler(logger *slog.Logger, source statsSource) *statsHandler {
	return &statsHandler{
		logger: logger.With("handler", "stats"),
		source: source,
	}
}

// ServeHTTP - reports how many sessions are open or playing and how many clients are bound.
func (that *statsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(that.source.Stats()); err != nil {
		that.logger.Error("failed to encode stats", "error", err)
	}
}
