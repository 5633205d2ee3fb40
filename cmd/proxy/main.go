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
	"github.com/alimgiray/demography/internal/proxy"
	"github.com/alimgiray/demography/pkg/config"
	"github.com/alimgiray/demography/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.Server.Mode)

	if cfg.Proxy.InsecureSkipVerify {
		logger.Warnf("TLS verification of %s is disabled", cfg.Proxy.CentralServiceURL)
	}
	httpClient, err := proxy.NewHTTPClient(proxy.TLSConfig{
		CAFile:             cfg.Proxy.CAFile,
		InsecureSkipVerify: cfg.Proxy.InsecureSkipVerify,
		Timeout:            time.Duration(cfg.Proxy.Timeout) * time.Second,
	})
	if err != nil {
		logger.Fatalf("Failed to build central service client: %v", err)
	}
	client := proxy.NewClient(cfg.Proxy.CentralServiceURL, httpClient, metrics.New())

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	handlers.RegisterProxyRoutes(router, client)
	router.GET("/health", handlers.NewHealthHandler(nil).HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.NoRoute(handlers.NotFound)

	server := &http.Server{
		Addr:         ":" + cfg.Proxy.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Proxy starting on %s, forwarding to %s", server.Addr, cfg.Proxy.CentralServiceURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Proxy failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down proxy...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Proxy forced to shut down: %v", err)
	}
	logger.Info("Proxy stopped")
}
