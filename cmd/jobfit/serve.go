package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/spf13/cobra"

	"github.com/kponna/jobfitai/internal/config"
	"github.com/kponna/jobfitai/internal/handlers"
	"github.com/kponna/jobfitai/internal/services"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default: JOBFIT_SERVER_PORT, PORT or 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setupApp(ctx, cfg)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return err
	}
	defer a.close()

	uploads := services.NewUploadStore(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := uploads.EnsureDir(); err != nil {
		log.Printf("❌ Failed to create upload directory: %v\n", err)
		return err
	}

	server := newServer(cfg, handlers.NewAnalyzeHandler(a.pipeline, uploads))

	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v\n", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := server.Listen(addr); err != nil {
		log.Printf("❌ Failed to start server: %v\n", err)
		return err
	}
	return nil
}

func newServer(cfg *config.Config, analyzeHandler *handlers.AnalyzeHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "JobFit AI",
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          10 * time.Minute,
		// Leave room for the multipart envelope around the largest allowed file.
		BodyLimit:             int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler:          customErrorHandler(cfg.IsProduction()),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "JobFit AI: resume analysis and job-fit recommendations",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/health",
			},
		})
	})

	return app
}

// customErrorHandler reports fiber errors as JSON. In production, errors
// that are not *fiber.Error are reported without their message.
func customErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		} else if production {
			log.Printf("❌ Unhandled error on %s %s: %v\n", c.Method(), c.Path(), err)
			message = utils.StatusMessage(code)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"code":  code,
		})
	}
}
