package handlers

import (
	"errors"
	"net/http"

	syncSvc "mentorhub/services/sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler exposes the external calendar provider integration.
type SyncHandler struct {
	Service syncSvc.SyncService
}

func NewSyncHandler(svc syncSvc.SyncService) *SyncHandler {
	return &SyncHandler{Service: svc}
}

// GetAuthURLHandler handles GET /api/calendar/google/auth-url.
func (h *SyncHandler) GetAuthURLHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, _ := identity(c)

	url, err := h.Service.GetAuthURL(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to build consent URL", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start calendar connection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authUrl": url})
}

// CallbackHandler handles GET /api/calendar/google/callback. The provider
// redirects here; the route is unauthenticated and tied to a user via the
// state nonce.
func (h *SyncHandler) CallbackHandler(c *gin.Context) {
	logger := getLogger(c)
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}

	userID, err := h.Service.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		if errors.Is(err, syncSvc.ErrInvalidState) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired state"})
			return
		}
		logger.Error("oauth callback failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect calendar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "userId": userID})
}

// ListProviderEventsHandler handles GET /api/calendar/google/events?start&end.
func (h *SyncHandler) ListProviderEventsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, _ := identity(c)

	start, err := parseTimeParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'start' parameter"})
		return
	}
	end, err := parseTimeParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'end' parameter"})
		return
	}

	events, err := h.Service.ListEvents(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, syncSvc.ErrNotConnected) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "calendar integration not connected"})
			return
		}
		logger.Error("provider event list failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list provider events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// TriggerSyncHandler handles POST /api/calendar/google/sync.
func (h *SyncHandler) TriggerSyncHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, _ := identity(c)

	result, err := h.Service.SyncSessions(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, syncSvc.ErrNotConnected) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "calendar integration not connected"})
			return
		}
		logger.Error("session sync failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
