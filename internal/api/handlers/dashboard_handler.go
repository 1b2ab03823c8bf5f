package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/merchops/pricedesk/internal/domain"
	"github.com/merchops/pricedesk/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) parseQuery(c *gin.Context) domain.DashboardQuery {
	return domain.DashboardQuery{
		Range:        strings.TrimSpace(c.Query("range")),
		Start:        strings.TrimSpace(c.Query("start")),
		End:          strings.TrimSpace(c.Query("end")),
		Platforms:    parsePlatforms(c),
		Manager:      strings.TrimSpace(c.DefaultQuery("manager", domain.ManagerAll)),
		IncludeToday: c.Query("include_today") == "true",
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context(), h.parseQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.service.Alerts(c.Request.Context(), h.parseQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
