package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"passball/internal/config"
	"passball/internal/db"
	httpServer "passball/internal/http"
	"passball/internal/http/handlers"
	"passball/internal/http/middleware"
	"passball/internal/logger"
	"passball/internal/metrics"
	"passball/internal/repository"
	"passball/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hubOpts := []ws.HubOption{ws.WithMetrics(m)}

	// история матчей - только если задан DATABASE_URL
	var matches handlers.MatchLister
	if cfg.DatabaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := db.Connect(dbCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			logger.Fatal("database connect failed", "error", err)
		}
		defer pool.Close()

		repo := repository.NewMatchRepository(pool)
		matches = repo
		hubOpts = append(hubOpts, ws.WithRecorder(repo))
		log.Info("match history enabled")
	} else {
		log.Warn("DATABASE_URL not set - match history disabled")
	}

	limiter, closeLimiter := middleware.NewLimiter(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RateLimitPerMinute)
	defer closeLimiter()

	hub := ws.NewHub(hubOpts...)
	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		hub.Run(hubCtx)
		close(hubDone)
	}()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Hub:           hub,
		Matches:       matches,
		Limiter:       limiter,
		Gatherer:      reg,
		AllowedOrigin: cfg.AllowedOrigin,
		SendBuffer:    cfg.SendBuffer,
		StaticDir:     cfg.StaticDir,
		Version:       Version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	// websocket-подключения не учитываются в Shutdown - закрываем их через hub
	stopHub()
	<-hubDone
	hub.Wait()

	log.Info("server exited")
}
