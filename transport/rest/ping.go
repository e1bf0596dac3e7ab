package rest

import (
	"log/slog"
	"net/http"
)

type pingHandler struct {
	logger *slog.Logger
}

func newPingHandler(logger *slog.Logger) *pingHandler {
	return &pingHandler{logger: logger.With("handler", "ping")}
}

// ServeHTTP - answers liveness probes.
func (that *pingHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
