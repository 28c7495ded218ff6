package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
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
	"github.com/sharath018/hotel-management-backend/internal/review"
	"github.com/sharath018/hotel-management-backend/internal/room"
	"github.com/sharath018/hotel-management-backend/internal/task"
	"github.com/sharath018/hotel-management-backend/routes"
	"github.com/sharath018/hotel-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka()

	// Init Firebase; push notifications degrade gracefully without it
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auditlog.AuditLog{},
		&room.Room{},
		&booking.Booking{},
		&event.Event{},
		&billing.Bill{},
		&task.Task{},
		&inquiry.Inquiry{},
		&review.Review{},
		&chat.Message{},
		&notification.InAppNotification{},
		&notification.FCMDeviceToken{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Seed roles & bootstrap admin
	if err := auth.SeedUserRoles(db); err != nil {
		log.Fatalf("❌ Failed to seed roles: %v", err)
	}
	if err := auth.SeedAdminUser(db); err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Cache-Control", "Pragma", "Expires"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
