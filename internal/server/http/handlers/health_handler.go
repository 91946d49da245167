package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordersvc/internal/server/http/dto"
)

const serviceName = "order-service"

// HealthHandler serves GET /health.
type HealthHandler struct {
	facade HealthFacade
	now    func() time.Time
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade, now: time.Now}
}

func (h *HealthHandler) Health(c *gin.Context) {
	report := h.facade.Health(c.Request.Context())
	data := dto.HealthData{
		Service:   serviceName,
		Timestamp: h.now().UTC(),
		Database:  report.Database,
		Cache:     report.Cache,
	}

	if !report.Healthy {
		data.Status = "DOWN"
		c.JSON(http.StatusServiceUnavailable, dto.Envelope{Success: false, Message: "Service is unhealthy", Data: data})
		return
	}
	data.Status = "UP"
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "Service is healthy", Data: data})
}
