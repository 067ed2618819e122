package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"mentorhub/config"
	sessionRepo "mentorhub/database/repository/session"
	"mentorhub/models"
	"mentorhub/services/calendar"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cal.com trigger events we react to.
const (
	triggerBookingCreated     = "BOOKING_CREATED"
	triggerBookingCancelled   = "BOOKING_CANCELLED"
	triggerBookingRescheduled = "BOOKING_RESCHEDULED"
	triggerMeetingEnded       = "MEETING_ENDED"
)

// WebhookHandler ingests Cal.com booking webhooks and mirrors them into the
// local session store. Mutations drop the parties' cached stats so the
// calendar summary reflects them immediately.
type WebhookHandler struct {
	Sessions sessionRepo.SessionRepository
	Cache    *redis.Client
}

func NewWebhookHandler(sessions sessionRepo.SessionRepository, cache *redis.Client) *WebhookHandler {
	return &WebhookHandler{Sessions: sessions, Cache: cache}
}

type calcomEvent struct {
	TriggerEvent string `json:"triggerEvent"`
	Payload      struct {
		UID       string    `json:"uid"`
		Title     string    `json:"title"`
		StartTime time.Time `json:"startTime"`
		EndTime   time.Time `json:"endTime"`
		Metadata  struct {
			MentorID    string `json:"mentorId"`
			StudentID   string `json:"studentId"`
			SessionType string `json:"sessionType"`
		} `json:"metadata"`
	} `json:"payload"`
}

// CalcomWebhookHandler handles POST /api/webhooks/calcom. The signature is
// HMAC-SHA256 over the raw body in the cal-signature header, verified in
// production only.
func (h *WebhookHandler) CalcomWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if config.IsProduction() {
		if !verifySignature(body, c.GetHeader("cal-signature"), config.AppConfig.CalcomWebhookSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}

	var event calcomEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if event.Payload.UID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing booking uid"})
		return
	}

	ctx := c.Request.Context()
	switch event.TriggerEvent {
	case triggerBookingCreated:
		duration := int(event.Payload.EndTime.Sub(event.Payload.StartTime).Minutes())
		if duration <= 0 {
			duration = 60
		}
		sessionType := event.Payload.Metadata.SessionType
		if sessionType == "" {
			sessionType = models.SessionTypeVideo
		}
		session := &models.Session{
			ID:          event.Payload.UID,
			MentorID:    event.Payload.Metadata.MentorID,
			StudentID:   event.Payload.Metadata.StudentID,
			ScheduledAt: event.Payload.StartTime,
			Duration:    duration,
			Subject:     event.Payload.Title,
			Type:        sessionType,
			Status:      models.SessionStatusScheduled,
			Payment:     models.PaymentInfo{Status: models.PaymentStatusPending},
		}
		if err := h.Sessions.Upsert(ctx, session); err != nil {
			logger.Error("webhook: booking upsert failed", zap.String("uid", event.Payload.UID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store booking"})
			return
		}
		calendar.InvalidateStats(ctx, h.Cache, session.MentorID, session.StudentID)

	case triggerBookingCancelled:
		if !h.patchSession(c, logger, event.Payload.UID, func(s *models.Session) {
			s.Status = models.SessionStatusCancelled
		}) {
			return
		}

	case triggerBookingRescheduled:
		if !h.patchSession(c, logger, event.Payload.UID, func(s *models.Session) {
			s.ScheduledAt = event.Payload.StartTime
		}) {
			return
		}

	case triggerMeetingEnded:
		if !h.patchSession(c, logger, event.Payload.UID, func(s *models.Session) {
			s.Status = models.SessionStatusCompleted
		}) {
			return
		}

	default:
		// Unknown triggers are acknowledged, not errored; Cal.com retries
		// non-2xx responses.
		c.JSON(http.StatusOK, gin.H{"handled": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"handled": true})
}

// patchSession loads, mutates and rewrites a session. Unknown bookings are
// acknowledged without action. Returns false if a response was already sent
// for a failure.
func (h *WebhookHandler) patchSession(c *gin.Context, logger *zap.Logger, id string, mutate func(*models.Session)) bool {
	ctx := c.Request.Context()
	session, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"handled": false})
		return false
	}
	mutate(session)
	if err := h.Sessions.Upsert(ctx, session); err != nil {
		logger.Error("webhook: session update failed", zap.String("uid", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update session"})
		return false
	}
	calendar.InvalidateStats(ctx, h.Cache, session.MentorID, session.StudentID)
	return true
}

// verifySignature compares the expected HMAC-SHA256 hex digest against the
// header value in constant time.
func verifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
