package handlers

import (
	"errors"
	"net/http"
	"time"

	"mentorhub/models"
	"mentorhub/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler serves calendar reads and bulk session mutations.
type CalendarHandler struct {
	Service calendar.CalendarService
}

func NewCalendarHandler(svc calendar.CalendarService) *CalendarHandler {
	return &CalendarHandler{Service: svc}
}

// identity pulls the authenticated caller off the context. Auth middleware
// guarantees both values are present on protected routes.
func identity(c *gin.Context) (string, string) {
	return c.GetString("userID"), c.GetString("role")
}

// parseTimeParam accepts RFC3339 or a bare date.
func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// GetEventsHandler handles GET /api/calendar/events?start&end&view.
func (h *CalendarHandler) GetEventsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, role := identity(c)

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

	data, err := h.Service.GetCalendarData(c.Request.Context(), userID, role, start, end)
	if err != nil {
		logger.Error("calendar query failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendar"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Bulk action names.
const (
	actionStatusUpdate = "bulk-status-update"
	actionReschedule   = "bulk-reschedule"
	actionDelete       = "bulk-delete"
)

// BulkActionsHandler handles POST /api/calendar/bulk-actions.
func (h *CalendarHandler) BulkActionsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, role := identity(c)

	var req models.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case actionStatusUpdate:
		res, err := h.Service.BulkStatusUpdate(ctx, userID, role, req.SessionIDs, req.NewStatus)
		if err != nil {
			h.bulkError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matched": res.Matched, "modified": res.Modified})

	case actionReschedule:
		if req.RescheduleData == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rescheduleData is required"})
			return
		}
		results, err := h.Service.BulkReschedule(ctx, userID, role, req.SessionIDs, req.RescheduleData.NewDateTime)
		if err != nil {
			h.bulkError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})

	case actionDelete:
		deleted, err := h.Service.BulkDelete(ctx, userID, role, req.SessionIDs)
		if err != nil {
			h.bulkError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

func (h *CalendarHandler) bulkError(c *gin.Context, logger *zap.Logger, err error) {
	var vErr *calendar.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, calendar.ErrMentorOnly), errors.Is(err, calendar.ErrInvalidRole):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error("bulk action failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Bulk action failed"})
	}
}
