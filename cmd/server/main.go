package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/demography/internal/handlers"
	"github.com/alimgiray/demography/internal/metrics"
	"github.com/alimgiray/demography/internal/middleware"
	"github.com/alimgiray/demography/internal/repositories"
	"github.com/alimgiray/demography/internal/services"
	"github.com/alimgiray/demography/pkg/config"
	"github.com/alimgiray/demography/pkg/database"
	"github.com/alimgiray/demography/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	m := metrics.New()
	personRepo := repositories.NewPersonRepository(database.DB)
	queryService := services.NewQueryService(personRepo, m)
	demographyService := services.NewDemographyService(personRepo, m)
	personService := services.NewPersonService(personRepo, queryService, demographyService, m)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	handlers.RegisterPersonRoutes(router, personService, cfg.Query.DefaultPageSize)
	router.GET("/health", handlers.NewHealthHandler(database.DB).HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.NoRoute(handlers.NotFound)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shut down: %v", err)
	}
	logger.Info("Server stopped")
}
