package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/greenwave/internal/config"
	"github.com/gyaneshwarpardhi/greenwave/internal/engine"
	"github.com/gyaneshwarpardhi/greenwave/internal/metrics"
	"github.com/gyaneshwarpardhi/greenwave/internal/query"
)

const maxBatchSize = 100

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader) http.Handler {
	h := &Handler{eng: eng, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/routes", h.findRoute)
	h.mux.HandleFunc("POST /v1/routes/batch", h.findRoutes)
	h.mux.HandleFunc("GET /v1/network", h.network)
	h.mux.HandleFunc("POST /v1/network/reload", h.reloadNetwork)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/routes: fastest route for one origin/destination pair.
func (h *Handler) findRoute(w http.ResponseWriter, r *http.Request) {
	var q query.Query
	if err := decodeJSON(w, r, &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if q.From == "" || q.To == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	q.ReceivedAt = time.Now()

	res, err := h.eng.Query(r.Context(), &q)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/routes/batch: up to 100 queries answered together.
func (h *Handler) findRoutes(w http.ResponseWriter, r *http.Request) {
	var qs []*query.Query
	if err := decodeJSON(w, r, &qs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(qs) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one query")
		return
	}
	if len(qs) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(qs), maxBatchSize))
		return
	}

	now := time.Now()
	for i, q := range qs {
		if q == nil || q.From == "" || q.To == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("query %d: from and to are required", i))
			return
		}
		if q.ID == "" {
			q.ID = uuid.New().String()
		}
		q.ReceivedAt = now
	}

	results := h.eng.QueryBatch(r.Context(), qs)
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batch_id": uuid.New().String(),
		"total":    len(qs),
		"failed":   failed,
		"results":  results,
	})
}

// GET /v1/network: describe the active network.
func (h *Handler) network(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Network())
}

// POST /v1/network/reload: re-read config and road table from disk.
func (h *Handler) reloadNetwork(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		status := http.StatusInternalServerError
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	if err := h.eng.Reload(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded": true,
		"network":  h.eng.Network(),
	})
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 if query queue >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrQueueFull):
		return http.StatusTooManyRequests
	case errors.Is(err, engine.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
