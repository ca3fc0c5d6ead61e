package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"absenku_backend/internals/configs"
	database "absenku_backend/internals/databases"
	attendanceRepository "absenku_backend/internals/features/attendance/repository"
	"absenku_backend/internals/features/attendance/service"
	"absenku_backend/internals/features/attendance/stream"
	"absenku_backend/internals/features/attendance/view"
	middlewares "absenku_backend/internals/middlewares"
	routes "absenku_backend/internals/route"
	seeds "absenku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (aligned with statement_timeout in the DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if os.Getenv("RUN_SEEDS") == "true" {
		seeds.RunAllSeeds(database.DB)
	}

	store := attendanceRepository.NewGormAttendanceStore(database.DB)

	// change-event stream: LISTEN/NOTIFY → decoder → broker → views
	rootCtx, rootCancel := context.WithCancel(context.Background())
	broker := stream.NewBroker()
	listener := stream.NewListener(database.ListenDSN(), broker)
	go func() {
		if err := listener.Run(rootCtx); err != nil && rootCtx.Err() == nil {
			log.Printf("[ERROR] stream listener stopped: %v", err)
		}
	}()

	// live admin view, seeded from the store before routes go up
	adminView, err := view.NewAdminView(rootCtx, store, broker)
	if err != nil {
		log.Fatalf("❌ admin view seed failed: %v", err)
	}

	svc := service.NewAttendanceService(store).WithView(adminView)

	routes.BaseRoutes(app, database.DB)
	routes.SetupRoutes(app, routes.Deps{
		DB:        database.DB,
		Service:   svc,
		AdminView: adminView,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop stream + view, then drain HTTP, then close pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rootCancel()
	adminView.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
