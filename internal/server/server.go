package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"thriftsave/internal/config"
	"thriftsave/internal/domain/admin"
	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
	"thriftsave/internal/domain/notification"
	"thriftsave/internal/domain/thrift"
	"thriftsave/internal/domain/wallet"
	"thriftsave/internal/middleware"
	"thriftsave/internal/pkg/jwt"
)

// App is the wired application: the HTTP router plus the background pieces
// the caller starts and stops.
type App struct {
	Router     *gin.Engine
	Dispatcher *notification.Dispatcher
	Hub        *notification.Hub
}

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&wallet.Wallet{},
		&wallet.Transaction{},
		&wallet.PayoutAccount{},
		&thrift.Package{},
		&thrift.Subscription{},
		&complaint.Complaint{},
		&complaint.Reply{},
		&notification.Notification{},
		&notification.Recipient{},
	)
}

func New(cfg *config.Config, db *gorm.DB) *App {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	// repositories
	userRepo := auth.NewUserRepository(db)
	thriftRepo := thrift.NewRepository(db)
	complaintRepo := complaint.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// services
	authService := auth.NewService(userRepo, jwtService)
	walletService := wallet.NewService(db)
	thriftService := thrift.NewService(thriftRepo, walletService)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, userRepo, thriftService, hub)

	complaintService := complaint.NewService(
		complaintRepo,
		complaint.NewTicketIssuer(cfg.Ticket.Prefix),
		userRepo,
		complaint.WithRetry(cfg.Ticket.Attempts, cfg.Ticket.RetryDelay),
		complaint.WithReplyNotifier(notification.NewComplaintNotifier(notificationService)),
	)

	adminService := admin.NewService(userRepo, complaintService, thriftService, notificationService, admin.NewRegistry())

	// handlers
	authHandler := auth.NewHandler(authService)
	walletHandler := wallet.NewHandler(walletService)
	thriftHandler := thrift.NewHandler(thriftService)
	complaintHandler := complaint.NewHandler(complaintService)
	notificationHandler := notification.NewHandler(notificationService)
	wsHandler := notification.NewWSHandler(hub, jwtService)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		thriftHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService), middleware.ActingUser(authService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			walletHandler.RegisterRoutes(protected)
			thriftHandler.RegisterProtectedRoutes(protected)
			complaintHandler.RegisterUserRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			staff := protected.Group("/staff")
			staff.Use(middleware.StaffOnly())
			{
				complaintHandler.RegisterStaffRoutes(staff)
			}

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				authHandler.RegisterAdminRoutes(adminGroup)
				thriftHandler.RegisterAdminRoutes(adminGroup)
				notificationHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	return &App{
		Router:     r,
		Dispatcher: notification.NewDispatcher(notificationService, cfg.DispatchInterval),
		Hub:        hub,
	}
}
