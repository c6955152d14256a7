package routes

import (
	"net/http"
	"time"
)

// Health returns a handler that responds with service status.
func Health(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(started).Seconds()),
		})
	}
}
