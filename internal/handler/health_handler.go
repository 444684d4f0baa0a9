package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/qboard/internal/response"
)

// HealthHandler reports liveness and basic runtime facts.
type HealthHandler struct {
	storeDriver string
	startTime   time.Time
}

func NewHealthHandler(storeDriver string) *HealthHandler {
	return &HealthHandler{storeDriver: storeDriver, startTime: time.Now()}
}

type healthStatus struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	Uptime    string `json:"uptime"`
	GoVersion string `json:"go_version"`
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, healthStatus{
		Status:    "ok",
		Store:     h.storeDriver,
		Uptime:    time.Since(h.startTime).Truncate(time.Second).String(),
		GoVersion: runtime.Version(),
	})
}
