package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrine/authflow"
	"vitrine/config"
	"vitrine/gateway"
	"vitrine/handlers"
	"vitrine/middleware"
	"vitrine/prefs"
	"vitrine/routes"
	"vitrine/session"
	"vitrine/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env before the config reads the environment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg := config.LoadConfig()

	// Durable store: Redis when reachable, in-memory otherwise
	var kv store.Store
	var rdb *redis.Client
	if redisStore := store.NewRedis(cfg.RedisURL); redisStore != nil {
		kv = redisStore
		rdb = redisStore.Client()
		defer redisStore.Close()
	} else {
		kv = store.NewMemory()
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	// Upstream API client and session layer; an upstream 401 on any call
	// clears the session it was issued for.
	gw := gateway.New(cfg.APIBaseURL)
	sessions := session.NewManager(kv, gw, cfg.SessionSecret, sessionTTL, middleware.Logger)
	gw.OnUnauthorized = sessions.Invalidate

	flow := authflow.NewController(sessions, kv, middleware.Logger)
	prefStore := prefs.NewStore(kv, sessionTTL)
	h := handlers.New(cfg, gw, sessions, flow, prefStore, kv, middleware.Logger)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Vitrine",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Setup routes
	routes.Setup(app, h, sessions, rdb)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
