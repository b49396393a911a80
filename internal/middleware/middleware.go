package middleware

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/api/presenters"
	"StyleShot-Backend/pkg/jwt"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	})
}

// AuthMiddleware verifies the bearer token and stores the subject in
// c.Locals("user_id"). Invalid credentials always stop the request before
// any business logic runs.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := jwtService.ValidateBearer(c.Get("Authorization"))
		if err != nil {
			message := domain.MessageFailedTokenInvalid
			if errors.Is(err, domain.ErrTokenNotFound) {
				message = domain.MessageFailedGetToken
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, err)
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
