package routes

import (
	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Booking  *handlers.BookingHandler
	Car      *handlers.CarHandler
	User     *handlers.UserHandler
	Feedback *handlers.FeedbackHandler
	Report   *handlers.ReportHandler
	Home     *handlers.HomeHandler
}

// SetupRouter builds the gin engine with global middleware and all route
// groups. Every route the service serves is registered here at startup.
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	r.Use(middleware.RequestIDMiddleware())

	if len(cfg.Security.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(cfg.Security.TrustedProxies)
	}

	secret := cfg.Security.JWTSecret

	SetupHomeRoutes(r, h.Home)

	api := r.Group("/")
	SetupAuthRoutes(api, h.Auth)
	SetupBookingRoutes(api, h.Booking, secret)
	SetupCarRoutes(api, h.Car, secret)
	SetupUserRoutes(api, h.User, secret)
	SetupFeedbackRoutes(api, h.Feedback, secret)
	SetupReportRoutes(api, h.Report, secret)

	return r
}
