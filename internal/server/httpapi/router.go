// Package httpapi serves the plain-HTTP side of daybookd: the prompt
// table, public object links, health and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Signer is implemented by services.AssetService.
type Signer interface {
	Sign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// Pinger reports backing store health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	promptsFile  string
	publicBucket string
	signer       Signer
	db           Pinger
	logger       logging.Logger
}

func NewHandler(promptsFile, publicBucket string, signer Signer, db Pinger, l logging.Logger) *Handler {
	return &Handler{
		promptsFile:  promptsFile,
		publicBucket: publicBucket,
		signer:       signer,
		db:           db,
		logger:       l.With("module", "http"),
	}
}

// Router builds the mux with recovery and request metrics applied.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.recovery, h.instrument)

	r.HandleFunc(common.PromptsPath, h.prompts).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(common.PublicObjectPrefix+"{bucket}/{key:.+}", h.publicObject).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// prompts serves the prompt table after checking it still parses.
func (h *Handler) prompts(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.promptsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "prompts not found")
			return
		}
		h.logger.Error(r.Context(), "read prompts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var set models.PromptSet
	if err := json.Unmarshal(data, &set); err != nil {
		h.logger.Error(r.Context(), "invalid prompts file", "file", h.promptsFile, "error", err)
		writeError(w, http.StatusInternalServerError, "invalid prompts file")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}

// publicObject redirects to a short-lived download URL. Only the image
// bucket is public.
func (h *Handler) publicObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bucket, key := vars["bucket"], vars["key"]

	if bucket != h.publicBucket {
		writeError(w, http.StatusNotFound, "object not found")
		return
	}

	url, err := h.signer.Sign(r.Context(), bucket, key, 0)
	if err != nil {
		h.logger.Warn(r.Context(), "sign public object", "bucket", bucket, "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "storage unavailable")
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg, "code": code})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}
