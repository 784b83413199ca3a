package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"agni/internal/config"
	"agni/internal/handler"
	"agni/internal/verify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	service, caps, cleanup := verify.Bootstrap(context.Background(), cfg)
	defer cleanup()

	verifyHandler := handler.NewVerifyHandler(service, handler.NewStatus(caps, cfg.StaticDir))

	r := gin.Default()
	r.Use(handler.RequestID())

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", handler.RequestIDHeader},
	}))

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Static("/static", cfg.StaticDir)
	} else {
		slog.Warn("static directory missing, serving status page only", "dir", cfg.StaticDir)
	}

	r.GET("/", verifyHandler.GetIndex)
	r.POST("/api/verify_news", verifyHandler.VerifyNews)
	r.GET("/health", verifyHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	slog.Info("server starting",
		"port", cfg.Port,
		"generative", caps.Generative,
		"search", caps.Search,
		"cache", caps.Cache,
	)

	err := r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
