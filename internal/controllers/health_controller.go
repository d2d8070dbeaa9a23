package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"ihsearch/internal/providers"
	"ihsearch/internal/storage"
)

const pingTimeout = 2 * time.Second

type HealthController struct {
	store     storage.StoreInterface
	logger    providers.Logger
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Storage        string  `json:"storage"`
	StoreReachable bool    `json:"store_reachable"`
}

// Health reports 503 when the store does not answer a ping.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		Storage:        hc.store.Driver(),
		StoreReachable: true,
	}
	status := http.StatusOK
	if err := hc.store.Ping(ctx); err != nil {
		hc.logger.Warnf(providers.TypeApp, "Health check: store ping failed: %v", err)
		resp.Status = "degraded"
		resp.StoreReachable = false
		status = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.StoreInterface, logger providers.Logger) *HealthController {
	return &HealthController{
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}
}
