package handlers

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/api/presenters"
	"StyleShot-Backend/pkg/credit"

	"github.com/gofiber/fiber/v2"
)

type (
	CreditHandler interface {
		GetBalance(c *fiber.Ctx) error
	}

	creditHandler struct {
		creditService credit.CreditService
	}
)

func NewCreditHandler(creditService credit.CreditService) CreditHandler {
	return &creditHandler{
		creditService: creditService,
	}
}

func (h *creditHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.creditService.GetBalance(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, balance, fiber.StatusOK, domain.MessageSuccessGetBalance)
}
