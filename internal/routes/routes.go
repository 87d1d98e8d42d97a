package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/checkout"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	ucAuth "github.com/BruksfildServices01/barber-booking/internal/usecase/auth"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// Notifier is everything the HTTP layer sends by e-mail.
type Notifier interface {
	ucBooking.Notifier
	handlers.CredentialsNotifier
}

// Deps are built once in main. Store and Checkout may be nil when the
// matching integration is not configured.
type Deps struct {
	DB       *gorm.DB
	Tokens   *auth.Tokens
	Audit    audit.Sink
	Notifier Notifier
	Limiter  middleware.Limiter
	Origins  []string
	Store    storage.ObjectStore
	Checkout checkout.Provider
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Origins))

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "Route not found.")
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	sessions := ucAuth.NewSessions(d.DB, d.Tokens)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Audit, d.Notifier)
	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, d.Audit, d.Notifier)
	rejectBookingUC := ucBooking.NewRejectBooking(bookingRepo, d.Audit, d.Notifier)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit, d.Notifier)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, d.Audit)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	getByTokenUC := ucBooking.NewGetByToken(bookingRepo)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		rejectBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listBookingsUC,
		getByTokenUC,
		availabilityUC,
	)

	authHandler := handlers.NewAuthHandler(d.DB, sessions, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB, sessions)
	professionalHandler := handlers.NewProfessionalHandler(d.DB)
	scheduleHandler := handlers.NewScheduleHandler(d.DB, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	adminHandler := handlers.NewAdminHandler(d.DB, d.Notifier, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	paymentHandler := handlers.NewPaymentHandler(d.DB, d.Checkout)
	galleryHandler := handlers.NewGalleryHandler(d.DB, d.Store, d.Audit)
	promotionHandler := handlers.NewPromotionHandler(d.DB)

	authenticated := middleware.AuthMiddleware(d.Tokens, d.DB)
	professional := []gin.HandlerFunc{authenticated, middleware.RequireProfessional()}
	client := []gin.HandlerFunc{authenticated, middleware.RequireClient()}
	admin := []gin.HandlerFunc{authenticated, middleware.RequireAdmin()}
	limited := middleware.RateLimit(d.Limiter)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	// ------------------------------
	// AUTH
	// ------------------------------
	authAPI := api.Group("/auth")
	{
		authAPI.POST("/login", limited, authHandler.Login)
		authAPI.POST("/unified-login", limited, authHandler.UnifiedLogin)
		authAPI.POST("/refresh", authHandler.Refresh)
		authAPI.POST("/logout", authHandler.Logout)
		authAPI.GET("/me", append(professional, authHandler.Me)...)
		authAPI.PUT("/change-password", append(professional, authHandler.ChangePassword)...)
	}

	// ------------------------------
	// BOOKINGS
	// ------------------------------
	bookings := api.Group("/bookings")
	{
		bookings.POST("", limited, bookingHandler.Create)
		bookings.GET("/token/:token", bookingHandler.GetByToken)
		bookings.PUT("/confirm/:token", bookingHandler.ConfirmByToken)
		bookings.PUT("/reject/:token", bookingHandler.RejectByToken)

		bookings.GET("/my-bookings", append(professional, bookingHandler.MyBookings)...)
		bookings.PUT("/:id/confirm", append(professional, bookingHandler.ConfirmByID)...)
		bookings.PUT("/:id/cancel", append(professional, bookingHandler.Cancel)...)
		bookings.PUT("/:id/complete", append(professional, bookingHandler.Complete)...)
	}

	// ------------------------------
	// PROFESSIONALS
	// ------------------------------
	pros := api.Group("/professionals")
	{
		pros.GET("", professionalHandler.List)

		pros.GET("/schedule", append(professional, scheduleHandler.Get)...)
		pros.POST("/schedule", append(professional, scheduleHandler.Create)...)
		pros.PUT("/schedule", append(professional, scheduleHandler.Replace)...)

		pros.GET("/block-time", append(professional, scheduleHandler.ListBlocks)...)
		pros.POST("/block-time", append(professional, scheduleHandler.AddBlock)...)
		pros.DELETE("/block-time/:id", append(professional, scheduleHandler.DeleteBlock)...)

		pros.PUT("/availability", append(professional, professionalHandler.SetAvailability)...)
		pros.PUT("/profile", append(professional, professionalHandler.UpdateProfile)...)

		pros.GET("/:id", professionalHandler.Get)
		pros.GET("/:id/available-slots", bookingHandler.Availability)
	}

	// ------------------------------
	// SERVICES / PROMOTIONS / GALLERY
	// ------------------------------
	api.GET("/services", serviceHandler.List)
	api.GET("/services/:id", serviceHandler.Get)

	api.GET("/promotions", promotionHandler.List)

	api.GET("/gallery", galleryHandler.List)
	api.POST("/gallery", append(professional, galleryHandler.Upload)...)
	api.DELETE("/gallery/:id", append(professional, galleryHandler.Delete)...)

	// ------------------------------
	// CLIENTS
	// ------------------------------
	clients := api.Group("/clients")
	{
		clients.POST("/register", limited, clientHandler.Register)
		clients.POST("/login", limited, clientHandler.Login)
		clients.GET("/me", append(client, clientHandler.Me)...)
		clients.PUT("/profile", append(client, clientHandler.UpdateProfile)...)
		clients.GET("/my-bookings", append(client, bookingHandler.ClientBookings)...)
	}

	// ------------------------------
	// PAYMENTS
	// ------------------------------
	payments := api.Group("/payments", professional...)
	{
		payments.GET("/today", paymentHandler.Today)
		payments.GET("/month", paymentHandler.Month)
		payments.GET("/history", paymentHandler.History)
		payments.GET("/monthly-stats", paymentHandler.MonthlyStats)
		payments.GET("/top-services", paymentHandler.TopServices)
		payments.POST("/checkout/:id", paymentHandler.Checkout)
	}

	// ------------------------------
	// ADMIN
	// ------------------------------
	adminAPI := api.Group("/admin", admin...)
	{
		adminAPI.GET("/professionals", adminHandler.ListProfessionals)
		adminAPI.POST("/professionals", adminHandler.CreateProfessional)
		adminAPI.PUT("/professionals/:id", adminHandler.UpdateProfessional)
		adminAPI.DELETE("/professionals/:id", adminHandler.DeleteProfessional)
		adminAPI.POST("/professionals/:id/reset-password", adminHandler.ResetPassword)

		adminAPI.POST("/services", serviceHandler.Create)
		adminAPI.PUT("/services/:id", serviceHandler.Update)
		adminAPI.DELETE("/services/:id", serviceHandler.Delete)

		adminAPI.POST("/promotions", promotionHandler.Create)
		adminAPI.PUT("/promotions/:id", promotionHandler.Update)
		adminAPI.DELETE("/promotions/:id", promotionHandler.Delete)

		adminAPI.GET("/audit-logs", auditLogsHandler.List)
	}
}
