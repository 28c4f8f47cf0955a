package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"decor-booking/internal/domain/user"
	"decor-booking/internal/handler/api"
	"decor-booking/internal/handler/middleware"
	"decor-booking/internal/handler/validation"
	"decor-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Booking      *api.BookingHandler
	Notification *api.NotificationHandler
	Review       *api.ReviewHandler
	Admin        *api.AdminHandler
}

func NewHandlers(auth *api.AuthHandler, booking *api.BookingHandler, notification *api.NotificationHandler, review *api.ReviewHandler, admin *api.AdminHandler) Handlers {
	return Handlers{Auth: auth, Booking: booking, Notification: notification, Review: review, Admin: admin}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, limiter middleware.RateLimiter, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	validation.Register()
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, limiter, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, limiter middleware.RateLimiter, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	adminOnly := authMiddleware.RequireRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	apiGroup.Use(middleware.RateLimit(limiter, cfg.RateLimit))
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/availability", Handler: h.Booking.CheckAvailability},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodGet, Path: "/:id/summary", Handler: h.Booking.Summary},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus},
				{Method: http.MethodPatch, Path: "/:id/assign", Handler: h.Booking.AssignDecorator, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id/payment", Handler: h.Booking.RecordPayment, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(requireAuth)
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Notification.List},
				{Method: http.MethodPatch, Path: "/read-all", Handler: h.Notification.MarkAllRead},
				{Method: http.MethodPatch, Path: "/:id/read", Handler: h.Notification.MarkRead},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Notification.Delete},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(requireAuth)
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Review.Create},
				{Method: http.MethodGet, Path: "/me", Handler: h.Review.ListMine},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(requireAuth, adminOnly)
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/users", Handler: h.Admin.ListUsers},
				{Method: http.MethodPut, Path: "/users/:id/role", Handler: h.Admin.UpdateRole},
				{Method: http.MethodPatch, Path: "/users/:id/toggle-active", Handler: h.Admin.ToggleActive},
				{Method: http.MethodGet, Path: "/analytics", Handler: h.Admin.Analytics},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/services/:id/reviews", Handler: h.Review.ListByService},
			{Method: http.MethodGet, Path: "/decorators/:id/reviews", Handler: h.Review.ListByDecorator},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
