package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"voiceleads-backend/controllers"
	"voiceleads-backend/crm"
	"voiceleads-backend/database"
	"voiceleads-backend/middlewares"
	"voiceleads-backend/routes"
	"voiceleads-backend/transcribe"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// ---- Database
	database.Connect()
	database.AutoMigrate()

	// ---- Limits (configurable via env)
	// Audio uploads are capped at 10MB in the handler; the body limit leaves
	// headroom for the multipart envelope.
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 12) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := envInt("RATE_LIMIT_MAX", 60)                                            // default 60 reqs
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second // default 60s window
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}))

	// ---- Request metrics
	app.Use(middlewares.Metrics())

	// ---- External service clients (constructor-injected; missing config
	// surfaces as a 500 on first use, not at startup)
	sttClient := transcribe.NewClient(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("TRANSCRIBE_BASE_URL"),
		os.Getenv("TRANSCRIBE_MODEL"),
	)
	attemptTimeout := time.Duration(envInt("CRM_ATTEMPT_TIMEOUT_SECONDS", 15)) * time.Second
	forwarder := crm.NewForwarder(os.Getenv("CRM_WEBHOOK_URL"), attemptTimeout)

	// ---- Routes
	routes.Register(app,
		controllers.NewTranscribeController(sttClient),
		controllers.NewContactController(forwarder),
	)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Println("API server starting on port", port)
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}
