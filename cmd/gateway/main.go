package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/identity"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	provider, err := identity.NewJWTProvider(
		envOr("JWT_SECRET", ""),
		time.Duration(envIntOr("TOKEN_TTL_MINUTES", 30))*time.Minute,
	)
	if err != nil {
		log.Fatalf("Failed to create identity provider: %v", err)
	}

	gateway, err := httpin.NewGatewayServer(
		envOr("USERS_SERVICE_URL", "http://localhost:8001"),
		envOr("ORDERS_SERVICE_URL", "http://localhost:8002"),
		provider,
	)
	if err != nil {
		log.Fatalf("Failed to create gateway: %v", err)
	}

	e := echo.New()
	e.Use(httpin.RequestLogger(slog.Default()))
	gateway.RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", envOr("HTTP_PORT", "8000"))))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}
