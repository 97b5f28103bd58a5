package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
)

// handleStream pushes every new snapshot as a server-sent "snapshot" event.
// The current snapshot, if any, is sent first.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	updates, unsubscribe := s.deps.Hub.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	if snap, ok := s.deps.Store.Latest(); ok {
		if err := writeEvent(w, snap); err != nil {
			s.log.Debug("stream closed", sl.Err(err))
			return
		}
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeEvent(w, snap); err != nil {
				s.log.Debug("stream closed", slog.String("id", snap.ID), sl.Err(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, snap *model.Snapshot) error {
	data, err := snap.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: snapshot\ndata: %s\n\n", snap.ID, data)
	return err
}
