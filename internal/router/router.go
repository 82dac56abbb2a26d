package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/ntalk/chatterline/backend/internal/handlers"
	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/ntalk/chatterline/backend/internal/repositories"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes migrates the schema, wires repositories into handlers and
// registers all application routes.
func SetupRoutes(e *echo.Echo, db *gorm.DB, maxFileBytes int) {
	err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Group{},
		&models.GroupMember{},
		&models.Message{},
		&models.Status{},
		&models.Like{},
		&models.View{},
		&models.Notification{},
		&models.MessageNotification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewUserRepository(db)
	friendshipRepo := repositories.NewFriendshipRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	messageRepo := repositories.NewMessageRepository(db, maxFileBytes)
	statusRepo := repositories.NewStatusRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	api := e.Group("/api/v1")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	groupHandler := handlers.NewGroupHandler(groupRepo)
	groupHandler.RegisterGroupRoutes(api)
	log.Println("Group routes configured.")

	messageHandler := handlers.NewMessageHandler(messageRepo, friendshipRepo)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	statusHandler := handlers.NewStatusHandler(statusRepo)
	statusHandler.RegisterStatusRoutes(api)
	log.Println("Status routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
