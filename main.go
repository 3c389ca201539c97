// @title ReviewIO API
// @version 1.0
// @description Social review platform: posts in categories, follows, blocks, comments and notifications.
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "reviewio/docs"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewio/bootstrap"
	"reviewio/config"
	"reviewio/database"
	"reviewio/internal/logging"
	"reviewio/internal/middleware"
	"reviewio/internal/repository"
	"reviewio/internal/routes"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.ConnectMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	db := client.Database(cfg.Mongo.Database)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("ensure indexes")
	}
	community, err := bootstrap.EnsureCommunityCategory(ctx, repository.NewCategoryRepository(db), cfg.Category.CommunitySlug)
	if err != nil {
		logging.Fatal().Err(err).Msg("ensure community category")
	}

	app := fiber.New(fiber.Config{
		AppName:      "reviewio",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(!cfg.IsProduction()),
	})

	app.Use(middleware.RequestID())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	app.Use(middleware.Metrics())

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.NewHandlers(db, cfg, community.ID), cfg)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logging.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	logging.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("listening")

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Error().Err(err).Msg("shutdown")
	}
}
