package http

import (
	"net/http"
	"time"

	"github.com/miservicio/auth-service/internal/core/ports"
	"github.com/miservicio/auth-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reports *services.ReportService
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewAdminHandler(reports *services.ReportService, logger ports.LoggerPort, metrics ports.MetricsPort) *AdminHandler {
	return &AdminHandler{
		reports: reports,
		logger:  logger,
		metrics: metrics,
	}
}

// @Summary Users summary
// @Description Aggregate user counts for operational reporting
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse{data=domain.UsersSummary} "Summary"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /api/v1/auth/admin/users-summary [get]
func (h *AdminHandler) UsersSummary(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	summary, err := h.reports.UsersSummary(c.Request.Context())
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Users summary", summary)
}
