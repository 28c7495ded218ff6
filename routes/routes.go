package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/database"
	"github.com/sharath018/hotel-management-backend/internal/auditlog"
	"github.com/sharath018/hotel-management-backend/internal/auth"
	"github.com/sharath018/hotel-management-backend/internal/billing"
	"github.com/sharath018/hotel-management-backend/internal/booking"
	"github.com/sharath018/hotel-management-backend/internal/chat"
	"github.com/sharath018/hotel-management-backend/internal/event"
	"github.com/sharath018/hotel-management-backend/internal/inquiry"
	"github.com/sharath018/hotel-management-backend/internal/notification"
	"github.com/sharath018/hotel-management-backend/internal/reports"
	"github.com/sharath018/hotel-management-backend/internal/review"
	"github.com/sharath018/hotel-management-backend/internal/room"
	"github.com/sharath018/hotel-management-backend/internal/task"
	"github.com/sharath018/hotel-management-backend/internal/user"
	"github.com/sharath018/hotel-management-backend/middleware"

	_ "github.com/sharath018/hotel-management-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module's repo, service and handler and registers the
// HTTP surface. StartKafkaConsumer is launched here too so the notification
// fanout is alive before the first request lands.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, authRepo)
	notifHandler := notification.NewHandler(notifSvc)
	notification.StartKafkaConsumer(notifSvc)

	// ========== Rooms ==========
	roomRepo := room.NewRepository(database.DB)
	roomSvc := room.NewService(roomRepo, auditSvc)
	roomHandler := room.NewHandler(roomSvc)

	// ========== Billing ==========
	billingRepo := billing.NewRepository(database.DB)
	billingSvc := billing.NewService(billingRepo, auditSvc)
	billingHandler := billing.NewHandler(billingSvc)

	// ========== Housekeeping Tasks ==========
	taskRepo := task.NewRepository(database.DB)
	taskSvc := task.NewService(taskRepo, roomRepo)
	taskHandler := task.NewHandler(taskSvc)

	// ========== Bookings ==========
	gateway := booking.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret)
	bookingRepo := booking.NewRepository(database.DB)
	bookingSvc := booking.NewService(bookingRepo, roomRepo, billingSvc, taskSvc, notifSvc, auditSvc, gateway, cfg)
	bookingHandler := booking.NewHandler(bookingSvc)

	// ========== Hall Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, authRepo, billingSvc, notifSvc, auditSvc, gateway, cfg)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Users ==========
	userRepo := user.NewRepository(database.DB)
	userSvc := user.NewService(userRepo, authRepo, auditSvc)
	userHandler := user.NewHandler(userSvc)

	// ========== Inquiries ==========
	inquiryRepo := inquiry.NewRepository(database.DB)
	inquirySvc := inquiry.NewService(inquiryRepo)
	inquiryHandler := inquiry.NewHandler(inquirySvc)

	// ========== Reviews ==========
	reviewRepo := review.NewRepository(database.DB)
	reviewSvc := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewSvc)

	// ========== Chat ==========
	chatRepo := chat.NewRepository(database.DB)
	chatSvc := chat.NewService(chatRepo, authRepo, notifSvc)
	chatHandler := chat.NewHandler(chatSvc)

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, reports.NewReportExporter(), roomRepo, bookingRepo, userRepo)
	reportsHandler := reports.NewHandler(reportsSvc)

	// ========== Public routes ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// Marketing site browsing needs no session; a staff token on the same
	// route unlocks the full inventory listing.
	api.GET("/rooms", middleware.OptionalAuthMiddleware(cfg, authSvc), roomHandler.ListRooms)
	api.GET("/rooms/:id", roomHandler.GetRoom)
	api.POST("/bookings/quote", bookingHandler.Quote)
	api.GET("/bookings/unavailable/:roomId", bookingHandler.UnavailableDates)
	api.POST("/inquiries", inquiryHandler.CreateInquiry)
	api.GET("/reviews/room/:roomId", reviewHandler.ListForRoom)

	// EventSource cannot send an Authorization header.
	api.GET("/notifications/stream-token", notifHandler.StreamInAppWithToken)

	// ========== Authenticated routes ==========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// Rooms (inventory management)
	roomWrite := protected.Group("/rooms")
	roomWrite.Use(middleware.RequireInventoryManager())
	{
		roomWrite.POST("", roomHandler.CreateRoom)
		roomWrite.PUT("/:id", roomHandler.UpdateRoom)
		roomWrite.DELETE("/:id", roomHandler.DeleteRoom)
	}
	// Housekeeping also flips room status after cleaning.
	protected.PUT("/rooms/:id/status",
		middleware.RBACMiddleware(middleware.RoleAdmin, middleware.RoleManager, middleware.RoleReceptionist, middleware.RoleHousekeeping),
		roomHandler.UpdateRoomStatus)

	// Bookings
	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.GET("", bookingHandler.ListBookings)
		bookingRoutes.GET("/:id", bookingHandler.GetBooking)
		bookingRoutes.POST("/payment-intent", bookingHandler.CreatePaymentIntent)
		bookingRoutes.POST("", bookingHandler.ConfirmBooking)
		bookingRoutes.PUT("/:id/status", bookingHandler.UpdateStatus)
	}

	// Hall events
	eventRoutes := protected.Group("/events")
	{
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/:id", eventHandler.GetEvent)
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.PUT("/:id/status", eventHandler.UpdateStatus)
		eventRoutes.GET("/:id/invoice", eventHandler.DownloadInvoice)
		eventRoutes.PUT("/:id/invoice", middleware.RequireFrontDesk(), eventHandler.Invoice)
		eventRoutes.POST("/:id/payment-intent", eventHandler.CreatePaymentIntent)
		eventRoutes.POST("/:id/payment-confirm", eventHandler.ConfirmPayment)
	}

	// Billing
	billingRoutes := protected.Group("/bills")
	{
		billingRoutes.GET("", billingHandler.ListBills)
		billingRoutes.POST("/:id/pay", middleware.RequireFrontDesk(), billingHandler.PayBill)
		billingRoutes.GET("/:id/receipt", billingHandler.GetReceipt)
	}

	// Housekeeping tasks
	taskRoutes := protected.Group("/tasks")
	taskRoutes.Use(middleware.RequireStaff())
	{
		taskRoutes.GET("", taskHandler.ListTasks)
		taskRoutes.GET("/completed", taskHandler.ListCompletedTasks)
		taskRoutes.POST("", middleware.RequireFrontDesk(), taskHandler.CreateTask)
		taskRoutes.PUT("/:id", taskHandler.UpdateTask)
		taskRoutes.DELETE("/:id", middleware.RequireFrontDesk(), taskHandler.DeleteTask)
	}

	// Users
	protected.GET("/users/me", userHandler.GetMyProfile)
	protected.PUT("/users/me", userHandler.UpdateMyProfile)
	userRoutes := protected.Group("/users")
	userRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin, middleware.RoleManager))
	{
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.GET("/:id", userHandler.GetUser)
		userRoutes.POST("", middleware.RBACMiddleware(middleware.RoleAdmin), userHandler.CreateStaff)
		userRoutes.PUT("/:id", middleware.RBACMiddleware(middleware.RoleAdmin), userHandler.UpdateUser)
	}

	// Inquiries (staff side)
	inquiryRoutes := protected.Group("/inquiries")
	inquiryRoutes.Use(middleware.RequireFrontDesk())
	{
		inquiryRoutes.GET("", inquiryHandler.ListInquiries)
		inquiryRoutes.POST("/:id/reply", inquiryHandler.Reply)
		inquiryRoutes.PUT("/:id/archive", inquiryHandler.Archive)
		inquiryRoutes.DELETE("/:id", middleware.RBACMiddleware(middleware.RoleAdmin), inquiryHandler.DeleteInquiry)
	}

	// Reviews
	protected.POST("/reviews", reviewHandler.CreateReview)
	protected.DELETE("/reviews/:id", reviewHandler.DeleteReview)

	// Chat
	chatRoutes := protected.Group("/chat")
	{
		chatRoutes.POST("/messages", chatHandler.SendMessage)
		chatRoutes.GET("/history/:id", chatHandler.History)
		chatRoutes.GET("/conversations", middleware.RequireFrontDesk(), chatHandler.ListConversations)
		chatRoutes.GET("/stream", chatHandler.Stream)
	}

	// Notifications
	notifRoutes := protected.Group("/notifications")
	{
		notifRoutes.GET("", notifHandler.GetMyNotifications)
		notifRoutes.PUT("/read", notifHandler.MarkRead)
		notifRoutes.DELETE("/:id", notifHandler.DeleteNotification)
		notifRoutes.GET("/stream", notifHandler.StreamInApp)
		notifRoutes.POST("/fcm/register", notifHandler.RegisterFCMToken)
		notifRoutes.POST("/fcm/unregister", notifHandler.UnregisterFCMToken)
	}

	// Reports and search
	reportRoutes := protected.Group("/reports")
	reportRoutes.Use(middleware.RequireStaff())
	{
		reportRoutes.GET("/dashboard", reportsHandler.Dashboard)
		reportRoutes.GET("/export", middleware.RequireFrontDesk(), reportsHandler.Export)
	}
	protected.GET("/search", middleware.RequireStaff(), reportsHandler.Search)

	// Audit logs
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin))
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}
}
