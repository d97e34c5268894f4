package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"site-manager/core/loader"
	"site-manager/core/logger"
	"site-manager/core/metrics"
	"site-manager/core/middleware/auth"
	"site-manager/core/middleware/rayid"
	"site-manager/feature/games"
	"site-manager/feature/system"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Site Manager API
// @version 1.0
// @description Game library API of the personal site.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger

		if !rt.cfg.Server.IsValidEnvironment() {
			logg.Warn("Unknown environment, using development defaults", zap.String("environment", rt.cfg.Server.Environment))
		}

		// The database is optional: without it the games feature stays unloaded.
		if err := rt.openDatabase(); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		}
		if err := rt.openStorage(); err != nil {
			return err
		}
		if err := rt.openCache(); err != nil {
			return err
		}

		if rt.cfg.Auth.JWTSecret == "" {
			if rt.cfg.Server.IsProduction() {
				logg.Fatal("AUTH_JWT_SECRET is required in production")
			}
			logg.Warn("AUTH_JWT_SECRET is empty, every protected request will be rejected")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             rt.cfg.Server.BodyLimit(),
			ReadTimeout:           30 * time.Second,
			WriteTimeout:          60 * time.Second,
		})

		sys := system.NewFeature(rt.storage, rt.cfg.Storage.Bucket, logg, rt.db)

		mgr := loader.NewManager()
		mgr.Register(sys)
		mgr.Register(games.NewFeature(rt.gamesOptions()))

		// RayID first so everything after it can be traced.
		app.Use(rayid.New())
		app.Use(metrics.Middleware())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Info("Request handled",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("took", time.Since(start)),
				zap.String("ip", c.IP()),
			)
			return err
		})

		// Public
		app.Get("/metrics", metrics.Handler())
		sys.LoadPublic(app)

		app.Use(auth.New(rt.cfg.Auth))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
