package routes

import (
	"net/http"
	"time"

	"petsitter/handlers"
	"petsitter/middleware"
	"petsitter/models"
	"petsitter/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.Auth.RegisterHandler)
		auth.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		protected.GET("/me", hb.Auth.MeHandler)
		protected.POST("/logout", hb.Auth.LogoutHandler)
		protected.PUT("/fcm-token", hb.Auth.UpdateFCMTokenHandler)
	}
}

// RegisterMemberRoutes registers booking endpoints used by members.
func RegisterMemberRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	member := api.Group("")
	member.Use(middleware.JWTAuthMiddleware(hb.Sessions, models.RoleMember))
	{
		member.POST("/bookings", hb.Booking.CreateBookingHandler)
		member.POST("/bookings/upload-payment-slip", hb.Booking.UploadSlipHandler)
		member.GET("/member/bookings", hb.Booking.ListMemberBookingsHandler)
		member.POST("/member/cancel-service", hb.Booking.MemberCancelHandler)
		member.POST("/review", hb.Review.SubmitReviewHandler)
	}

	// Either party of a booking may read it.
	api.GET("/bookings/:id", middleware.JWTAuthMiddleware(hb.Sessions), hb.Booking.GetBookingHandler)
}

// RegisterSitterRoutes registers job, offering and payout endpoints used by sitters.
func RegisterSitterRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	sitter := api.Group("/sitter")
	sitter.Use(middleware.JWTAuthMiddleware(hb.Sessions, models.RoleSitter))
	{
		sitter.GET("/jobs", hb.Booking.ListJobsHandler)
		sitter.POST("/jobs/accept", hb.Booking.AcceptJobHandler)
		sitter.POST("/jobs/cancel", hb.Booking.CancelJobHandler)

		sitter.POST("/services", hb.Sitter.AddServiceHandler)
		sitter.GET("/services", hb.Sitter.ListServicesHandler)
		sitter.DELETE("/services/:id", hb.Sitter.DeleteServiceHandler)

		sitter.POST("/payment-methods", hb.Sitter.AddPaymentMethodHandler)
		sitter.GET("/payment-methods", hb.Sitter.ListPaymentMethodsHandler)
		sitter.DELETE("/payment-methods/:id", hb.Sitter.DeletePaymentMethodHandler)

		sitter.GET("/income-stats", hb.Sitter.IncomeStatsHandler)
	}
}

// RegisterPublicRoutes registers read-only endpoints that need no session.
func RegisterPublicRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/reviews/sitter/:id", hb.Review.AverageRatingHandler)
	api.GET("/reviews/sitter/:id/list", hb.Review.ListSitterReviewsHandler)
	api.GET("/sitters/:id/services", hb.Sitter.ListServicesHandler)
	api.GET("/pet-types", hb.Taxonomy.ListPetTypesForSittersHandler)
	api.GET("/service-types", hb.Taxonomy.ListServiceTypesHandler)

	// Members see where to send money once signed in.
	api.GET("/sitters/:id/payment-method", middleware.JWTAuthMiddleware(hb.Sessions), hb.Sitter.PrimaryPaymentMethodHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware(hb.AdminToken))
	{
		adminGroup.GET("/booking-slips", hb.Admin.ListSlipsHandler)
		adminGroup.PUT("/booking-slips", hb.Admin.SetSlipStatusHandler)
		adminGroup.DELETE("/booking-slips/:booking_id", hb.Admin.DeleteSlipHandler)

		adminGroup.GET("/pet-types", hb.Taxonomy.ListPetTypesHandler)
		adminGroup.GET("/pet-types/:id", hb.Taxonomy.GetPetTypeHandler)
		adminGroup.POST("/pet-types", hb.Taxonomy.CreatePetTypeHandler)
		adminGroup.PUT("/pet-types/:id", hb.Taxonomy.UpdatePetTypeHandler)
		adminGroup.DELETE("/pet-types/:id", hb.Taxonomy.DeletePetTypeHandler)

		adminGroup.GET("/service-types", hb.Taxonomy.ListServiceTypesHandler)
		adminGroup.GET("/service-types/:id", hb.Taxonomy.GetServiceTypeHandler)
		adminGroup.POST("/service-types", hb.Taxonomy.CreateServiceTypeHandler)
		adminGroup.PUT("/service-types/:id", hb.Taxonomy.UpdateServiceTypeHandler)
		adminGroup.DELETE("/service-types/:id", hb.Taxonomy.DeleteServiceTypeHandler)

		adminGroup.GET("/sitters", hb.Admin.ListSittersHandler)
		adminGroup.POST("/sitters/update-status", hb.Admin.UpdateSitterStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		if !status.OK() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "services": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": status})
	})
}

// Options tune the global middleware.
type Options struct {
	MaxRequestsPerMin int
	RequestTimeout    time.Duration
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(utils.GetLogger()))
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))
	r.Use(middleware.RequestTimeout(opts.RequestTimeout))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb)
	RegisterMemberRoutes(api, hb)
	RegisterSitterRoutes(api, hb)
	RegisterPublicRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
