package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status         string  `json:"status"`
	DB             string  `json:"db"`
	UptimeSeconds  int64   `json:"uptimeSeconds"`
	MemUsedPercent float64 `json:"memUsedPercent"`
}

// HealthHandler reports process and database health.
type HealthHandler struct {
	db      Pinger
	started time.Time
}

// NewHealthHandler creates a HealthHandler. The process start time is read
// once from the OS, falling back to the current time.
func NewHealthHandler(db Pinger) *HealthHandler {
	h := &HealthHandler{db: db, started: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if ms, err := p.CreateTime(); err == nil {
			h.started = time.UnixMilli(ms)
		}
	}
	return h
}

// Check answers 200 when the database responds and 503 otherwise.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:        "ok",
		DB:            "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		resp.MemUsedPercent = vm.UsedPercent
	} else {
		hlog.FromRequest(r).Debug().Err(err).Msg("Could not read host memory")
	}

	status := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Health check: database unreachable")
		resp.Status = "degraded"
		resp.DB = "unreachable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
