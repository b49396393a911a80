package routes

import (
	"StyleShot-Backend/internal/api/handlers"
	"StyleShot-Backend/internal/middleware"
	"StyleShot-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	CreditHandler     handlers.CreditHandler
	PaymentHandler    handlers.PaymentHandler
	GenerationHandler handlers.GenerationHandler
	AdminHandler      handlers.AdminHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Credits()
	c.Payments()
	c.Generations()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) Credits() {
	credits := c.App.Group("/api/v1/credits")
	{
		credits.Get("/packages", c.PaymentHandler.GetCreditPackages)
		credits.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.CreditHandler.GetBalance)
	}
}

func (c *Config) Payments() {
	payments := c.App.Group("/api/v1/payments", c.Middleware.AuthMiddleware(c.JWTService))
	{
		payments.Post("/settle", c.PaymentHandler.Settle)
		payments.Get("/history", c.PaymentHandler.GetTransactionHistory)
	}
}

func (c *Config) Generations() {
	generations := c.App.Group("/api/v1/generations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		generations.Post("", c.GenerationHandler.Submit)
		generations.Get("", c.GenerationHandler.GetHistory)
		generations.Get("/:id", c.GenerationHandler.GetStatus)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.Middleware.AuthMiddleware(c.JWTService))
	{
		admin.Get("/files", c.AdminHandler.ListFiles)
		admin.Post("/files", c.AdminHandler.UploadFile)
		admin.Delete("/files/*", c.AdminHandler.DeleteFile)
		admin.Post("/generations/reconcile", c.AdminHandler.ReconcileGenerations)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	// Completion/failure callback from the generation engine.
	c.App.Post("/webhook/generation", c.GenerationHandler.EngineCallback)
}
