package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// @Summary      Role-aware dashboard
// @Description  Admin gets global pipeline counts, a broker gets counts for their own leads.
// @Tags         Dashboard
// @Produce      json
// @Param        X-Current-User  header    string  false  "role selector"
// @Success      200             {object}  services.Dashboard
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Summary(currentUser(c)))
}

func (h *DashboardHandler) Activity(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.RecentActivity())
}
