package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bfstore/lojinha/internal/notify"
)

// Handler streams purchase events to dashboards over server-sent events.
type Handler struct {
	broadcaster *notify.Broadcaster
}

func NewHandler(broadcaster *notify.Broadcaster) *Handler {
	return &Handler{broadcaster: broadcaster}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.stream)
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := h.broadcaster.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}

			payload, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to encode event", "error", err)
				continue
			}

			if _, err := fmt.Fprintf(w, "event: purchase\ndata: %s\n\n", payload); err != nil {
				return
			}

			flusher.Flush()
		}
	}
}
