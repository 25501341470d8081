package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harborview/config"
	"harborview/cron"
	"harborview/database"
	bookingRepoPkg "harborview/database/repository/booking"
	insightRepoPkg "harborview/database/repository/insight"
	staffRepoPkg "harborview/database/repository/staff"
	"harborview/handlers"
	"harborview/middleware"
	"harborview/routes"
	"harborview/services/assistant"
	"harborview/services/reports"
	"harborview/services/staff"
	"harborview/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitChatContextCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	insightRepo := insightRepoPkg.NewMongoInsightRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()

	// background jobs.
	jobQueue := cron.NewJobQueue()
	reportService := &reports.DefaultReportService{
		Bookings: bookingRepo,
		Logger:   logger,
	}
	cron.InitReportWorker(reportService)

	// services.
	resultCache := assistant.NewRedisResultCache(utils.GetCacheClient())
	toolset, err := assistant.NewToolset(bookingRepo, insightRepo, jobQueue, resultCache)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build tool registry: %v", err)
	}

	model, err := assistant.NewGeminiClient(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		toolset.Declarations(),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model client: %v", err)
	}

	ctxStore := assistant.NewRedisContextStore(
		utils.GetChatContextCacheClient(),
		time.Duration(config.AppConfig.ChatContextTTLMin)*time.Minute,
	)
	assistantService := &assistant.DefaultAssistantService{
		Model:  model,
		Tools:  toolset,
		Store:  ctxStore,
		Logger: logger,
	}

	authService := &staff.DefaultAuthService{Repo: staffRepo}

	// handlers.
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	bookingHandler := handlers.NewBookingHandler(bookingRepo)
	insightHandler := handlers.NewInsightHandler(insightRepo)
	authHandler := handlers.NewAuthHandler(authService)

	handlerBundle := &handlers.HandlerBundle{
		StaffRepo: staffRepo,

		LoginHandler: authHandler.LoginHandler,

		ChatStreamHandler: assistantHandler.ChatStreamHandler,

		ListBookingsHandler:        bookingHandler.ListBookingsHandler,
		GetBookingHandler:          bookingHandler.GetBookingHandler,
		UpdateBookingStatusHandler: bookingHandler.UpdateBookingStatusHandler,
		UpdatePaymentStatusHandler: bookingHandler.UpdatePaymentStatusHandler,
		UpdateStayStatusHandler:    bookingHandler.UpdateStayStatusHandler,

		ListInsightsHandler:  insightHandler.ListInsightsHandler,
		CreateInsightHandler: insightHandler.CreateInsightHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
