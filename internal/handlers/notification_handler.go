package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leadflow/internal/realtime"
	"leadflow/internal/services"
)

type NotificationHandler struct {
	Center *services.NotificationCenter
	Hub    *realtime.Hub
	log    *logrus.Logger
}

func NewNotificationHandler(center *services.NotificationCenter, hub *realtime.Hub, log *logrus.Logger) *NotificationHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationHandler{Center: center, Hub: hub, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Center.Active())
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	if !h.Center.Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream upgrades to a websocket that receives every new notification.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if err := h.Hub.Serve(c.Writer, c.Request); err != nil {
		// the upgrader has already written the error response
		h.log.WithError(err).Debug("websocket upgrade")
	}
}
