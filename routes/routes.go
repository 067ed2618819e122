package routes

import (
	"net/http"
	"time"

	"mentorhub/handlers"
	"mentorhub/middleware"
	"mentorhub/models"
	"mentorhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	Calendar      *handlers.CalendarHandler
	Sync          *handlers.SyncHandler
	Webhook       *handlers.WebhookHandler
	Analytics     *handlers.AnalyticsHandler
	Notifications *handlers.NotificationHandler
}

// RegisterCalendarRoutes registers calendar query, bulk mutation and
// provider sync endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/events", hb.Calendar.GetEventsHandler)
		api.POST("/bulk-actions", hb.Calendar.BulkActionsHandler)

		// Provider integration; mentor-only except the OAuth callback, which
		// the provider itself calls.
		google := api.Group("/google")
		google.Use(middleware.RequireRole(models.RoleMentor))
		google.GET("/auth-url", hb.Sync.GetAuthURLHandler)
		google.GET("/events", hb.Sync.ListProviderEventsHandler)
		google.POST("/sync", hb.Sync.TriggerSyncHandler)
	}

	// Unauthenticated: the redirect target of the provider consent screen.
	r.GET("/api/calendar/google/callback", hb.Sync.CallbackHandler)
}

// RegisterWebhookRoutes registers inbound provider webhooks. These are
// unauthenticated; the payload signature is the only gate.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/webhooks/calcom", hb.Webhook.CalcomWebhookHandler)
}

// RegisterAnalyticsRoutes registers the mentor dashboard endpoints.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/analytics")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.Use(middleware.RequireRole(models.RoleMentor))
		api.GET("", hb.Analytics.GetAnalyticsHandler)
		api.POST("/export", hb.Analytics.ExportHandler)
	}
}

// RegisterNotificationRoutes registers the caller's notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Notifications.ListNotificationsHandler)
		api.PATCH("/:id/read", hb.Notifications.MarkReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCalendarRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r)
}
