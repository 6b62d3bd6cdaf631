package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oeeboard/internal/access"
	"oeeboard/internal/config"
	"oeeboard/internal/handler"
	"oeeboard/internal/middleware"
	"oeeboard/internal/model"
	"oeeboard/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Machine{},
		&model.Shift{},
		&model.ProductionRecord{},
		&model.Invitation{},
		&model.ViewingContext{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	contextRepo := repository.NewContextRepository(db)

	// Initialize access control
	resolver := access.NewResolver(userRepo, invitationRepo, contextRepo)
	invitationManager := access.NewInvitationManager(userRepo, invitationRepo, resolver)
	switcher := access.NewSwitcher(contextRepo, resolver)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	machineHandler := handler.NewMachineHandler(machineRepo, switcher, resolver)
	shiftHandler := handler.NewShiftHandler(shiftRepo)
	productionHandler := handler.NewProductionHandler(productionRepo, machineRepo, shiftRepo, switcher, resolver)
	dashboardHandler := handler.NewDashboardHandler(productionRepo, machineRepo, switcher)
	reportHandler := handler.NewReportHandler(productionRepo, switcher)
	invitationHandler := handler.NewInvitationHandler(invitationManager, resolver)
	contextHandler := handler.NewContextHandler(switcher, resolver)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Profile routes
		authorized.GET("/profile", userHandler.GetProfile)
		authorized.PUT("/profile", userHandler.UpdateProfile)

		// Machine routes
		authorized.GET("/machines", machineHandler.GetAll)
		authorized.POST("/machines", machineHandler.Create)
		authorized.PUT("/machines/:id", machineHandler.Update)
		authorized.DELETE("/machines/:id", machineHandler.Delete)

		// Shift routes
		authorized.GET("/shifts", shiftHandler.GetAll)

		// Production record routes
		authorized.GET("/production", productionHandler.GetAll)
		authorized.POST("/production", productionHandler.Create)
		authorized.PUT("/production/:id", productionHandler.Update)
		authorized.DELETE("/production/:id", productionHandler.Delete)

		// Dashboard metrics routes
		authorized.GET("/dashboard/summary", dashboardHandler.Summary)
		authorized.GET("/dashboard/trend", dashboardHandler.Trend)
		authorized.GET("/dashboard/machines", dashboardHandler.Machines)

		// Report routes
		authorized.GET("/reports", reportHandler.Get)
		authorized.GET("/reports/export", reportHandler.ExportCSV)

		// Invitation routes
		authorized.GET("/invitations", invitationHandler.List)
		authorized.POST("/invitations", invitationHandler.Send)
		authorized.POST("/invitations/:id/accept", invitationHandler.Accept)
		authorized.POST("/invitations/:id/reject", invitationHandler.Reject)
		authorized.PUT("/invitations/:id/role", invitationHandler.UpdateRole)
		authorized.DELETE("/invitations/:id", invitationHandler.Remove)

		// Dashboard context routes
		authorized.GET("/dashboards", contextHandler.List)
		authorized.POST("/dashboards/switch", contextHandler.Switch)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
