// Package server builds the fiber application: middleware, the error handler,
// API routes and the static site.
package server

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/config"
	"storefront-backend/internal/content"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/storage"
)

func NewApp(cfg *config.Config, st storage.Store, images storage.ImageStore, gate *auth.Gate) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		BodyLimit:             cfg.MaxUploadMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	origins := corsOrigins(cfg.CORSOrigins)
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware())
	app.Use(preflight(origins))
	app.Use(corsMiddleware(origins))

	api := app.Group("/api")
	admin := auth.RequireAdmin(gate)

	api.Post("/admin/login", auth.LoginHandler(gate))
	api.Get("/admin/status", auth.StatusHandler(gate))

	api.Get("/branches", content.ListBranchesHandler(st))
	api.Get("/branches/:id", content.GetBranchHandler(st))
	api.Post("/branches", admin, content.CreateBranchHandler(st, images))
	api.Put("/branches/:id", admin, content.UpdateBranchHandler(st, images))
	api.Delete("/branches/:id", admin, content.DeleteBranchHandler(st))

	api.Get("/slides", content.ListSlidesHandler(st))
	api.Get("/slides/:id", content.GetSlideHandler(st))
	api.Post("/slides", admin, content.CreateSlideHandler(st, images))
	api.Put("/slides/:id", admin, content.UpdateSlideHandler(st, images))
	api.Delete("/slides/:id", admin, content.DeleteSlideHandler(st))

	api.Get("/contact", content.GetContactHandler(st))
	api.Put("/contact", admin, content.UpdateContactHandler(st))

	// the fixed segments must be registered before /:id
	api.Get("/reviews", content.ListReviewsHandler(st))
	api.Get("/reviews/branch/:branchId", content.ListBranchReviewsHandler(st))
	api.Get("/reviews/random/:count?", content.RandomReviewsHandler(st))
	api.Get("/reviews/:id", content.GetReviewHandler(st))
	api.Post("/reviews", admin, content.CreateReviewHandler(st, images))
	api.Put("/reviews/:id", admin, content.UpdateReviewHandler(st, images))
	api.Delete("/reviews/:id", admin, content.DeleteReviewHandler(st))

	api.Get("/images/:id", content.GetImageHandler(images))
	api.Post("/images", admin, content.UploadImageHandler(images))

	registerSite(app, cfg)
	return app
}

func registerSite(app *fiber.App, cfg *config.Config) {
	app.Static("/uploads", cfg.UploadDir)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.PublicDir, "index.html"))
	})
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.PublicDir, "admin.html"))
	})
	app.Static("/", cfg.PublicDir)
}
