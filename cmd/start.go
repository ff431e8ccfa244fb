package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"s3util/core/loader"
	"s3util/core/logger"
	"s3util/core/middleware/auth"
	"s3util/core/middleware/rayid"

	"s3util/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "s3util/docs/swagger"
)

// @title s3util API
// @version 1.0
// @description HTTP access to a single S3 bucket through the object store facade.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()
		zap.ReplaceGlobals(sess.logger)

		app, err := newApp(sess)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			sess.logger.Info("Starting server",
				zap.String("port", sess.cfg.Server.Port),
				zap.String("bucket", sess.store.Bucket()),
			)
			errCh <- app.Listen(sess.cfg.Server.Address())
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case <-c:
			sess.logger.Info("Shutting down server...")
			return app.Shutdown()
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		}
	},
}

// newApp wires middleware and features onto a new Fiber app.
func newApp(sess *session) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(sess.logger, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Public routes
	app.Get("/swagger/*", swagger.HandlerDefault)
	if sess.metrics != nil {
		app.Get(sess.cfg.Metrics.Path, adaptor.HTTPHandler(sess.metrics.Handler()))
	}

	app.Use(auth.New(auth.Config{ApiKey: sess.cfg.Server.ApiKey}))

	mgr := loader.NewManager()
	mgr.Register(objects.NewFeature(sess.store, sess.logger))
	if err := mgr.LoadAll(app); err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
