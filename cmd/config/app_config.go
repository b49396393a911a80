package config

import (
	"StyleShot-Backend/internal/api/handlers"
	"StyleShot-Backend/internal/api/routes"
	"StyleShot-Backend/internal/middleware"
	"StyleShot-Backend/internal/utils"
	"StyleShot-Backend/internal/utils/storage"
	"StyleShot-Backend/pkg/admin"
	"StyleShot-Backend/pkg/credit"
	"StyleShot-Backend/pkg/generation"
	"StyleShot-Backend/pkg/jwt"
	"StyleShot-Backend/pkg/payment"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	creditRepository := credit.NewCreditRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)
	generationRepository := generation.NewGenerationRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	creditService := credit.NewCreditService(creditRepository)
	paypalClient, err := payment.NewPayPalClient()
	if err != nil {
		return nil, err
	}
	paymentService := payment.NewPaymentService(
		paymentRepository,
		creditService,
		paypalClient,
	)
	generationService := generation.NewGenerationService(
		generationRepository,
		creditService,
		generation.NewEngineClient(),
	)
	adminService := admin.NewAdminService(adminRepository, s3)

	// Handler
	creditHandler := handlers.NewCreditHandler(creditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)
	generationHandler := handlers.NewGenerationHandler(generationService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, generationService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		CreditHandler:     creditHandler,
		PaymentHandler:    paymentHandler,
		GenerationHandler: generationHandler,
		AdminHandler:      adminHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
