// File: plannerly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plannerly/config"
	"plannerly/cron"
	"plannerly/database"
	planRepoPkg "plannerly/database/repository/plan"
	"plannerly/handlers"
	"plannerly/middleware"
	"plannerly/routes"
	"plannerly/services/budget"
	"plannerly/services/conversation"
	planSvc "plannerly/services/plan"
	"plannerly/services/tasks"
	"plannerly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	planRepo := planRepoPkg.NewMongoPlanRepo()

	// services.
	sessionTTL := time.Duration(config.AppConfig.SessionCacheTTLMinutes) * time.Minute
	sessionStore := planSvc.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	conversationService := conversation.NewDefaultService(conversation.NewFlow())
	budgetEngine := budget.NewEngine()

	reviewClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReviewQueueDB,
	})
	reviewQueue := tasks.NewAsynqQueue(reviewClient)

	planService := &planSvc.DefaultPlanService{
		Repo:         planRepo,
		Cache:        sessionStore,
		Conversation: conversationService,
		Budget:       budgetEngine,
		Reviews:      reviewQueue,
	}
	planHandler := handlers.NewPlanHandler(planService, logger)

	// Background budget review worker.
	cron.InitReviewWorker(planService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreatePlan:      planHandler.CreatePlan,
		GetPlan:         planHandler.GetPlan,
		PostMessage:     planHandler.PostMessage,
		AddSelection:    planHandler.AddSelection,
		RemoveSelection: planHandler.RemoveSelection,
		SetPriorities:   planHandler.SetPriorities,
		GetBudget:       planHandler.GetBudget,
		CancelPlan:      planHandler.CancelPlan,
	}

	// Register routes with the assembled handler bundle.
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

	if err := reviewClient.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close review queue client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
