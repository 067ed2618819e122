package handlers

import (
	"net/http"

	notificationSvc "mentorhub/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the caller's persisted notifications.
type NotificationHandler struct {
	Service notificationSvc.NotificationService
}

func NewNotificationHandler(svc notificationSvc.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListNotificationsHandler handles GET /api/notifications?unread.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, _ := identity(c)

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.Service.ListForUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		logger.Error("notification list failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkReadHandler handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	userID, _ := identity(c)
	id := c.Param("id")

	if err := h.Service.MarkRead(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
