package httpapi

import (
	"net/http"
	"runtime/debug"
)

// recovery intercepts panics from downstream handlers, logs details and
// returns HTTP 500.
func (h *Handler) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error(r.Context(), "panic recovered",
					"panic", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"remote", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
