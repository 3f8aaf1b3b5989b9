package api

import (
	"context"
	"net/http"
	"time"

	"instudio/pkg/logger"
)

const probeTimeout = 2 * time.Second

// Probe reports the state of one dependency. Stats may be nil.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
	Stats func() map[string]interface{}
}

type HealthHandler struct {
	probes []Probe
	logger logger.Logger
	now    func() time.Time
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
	Version   string                 `json:"version"`
}

func NewHealthHandler(logger logger.Logger, probes ...Probe) *HealthHandler {
	return &HealthHandler{
		probes: probes,
		logger: logger,
		now:    time.Now,
	}
}

func (h *HealthHandler) check(ctx context.Context, p Probe) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return p.Check(ctx)
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	services := make(map[string]interface{}, len(h.probes))

	for _, p := range h.probes {
		entry := map[string]interface{}{"status": "healthy"}
		if err := h.check(r.Context(), p); err != nil {
			h.logger.WarnContext(r.Context(), "Health probe failed", map[string]interface{}{"probe": p.Name, "error": err.Error()})
			entry["status"] = "unhealthy"
			entry["error"] = err.Error()
			status = "degraded"
		}
		if p.Stats != nil {
			for k, v := range p.Stats() {
				entry[k] = v
			}
		}
		services[p.Name] = entry
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: h.now(),
		Services:  services,
		Version:   "1.0.0",
	})
}

func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": h.now(),
	})
}

func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	issues := make([]string, 0)
	for _, p := range h.probes {
		if err := h.check(r.Context(), p); err != nil {
			issues = append(issues, p.Name+": "+err.Error())
		}
	}

	response := map[string]interface{}{"timestamp": h.now()}
	if len(issues) == 0 {
		response["status"] = "ready"
		writeJSON(w, http.StatusOK, response)
		return
	}

	response["status"] = "not_ready"
	response["issues"] = issues
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /health/live", h.LivenessCheck)
	mux.HandleFunc("GET /health/ready", h.ReadinessCheck)
}
