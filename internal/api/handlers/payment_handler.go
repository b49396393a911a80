package handlers

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/api/presenters"
	"StyleShot-Backend/pkg/payment"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PaymentHandler interface {
		GetCreditPackages(c *fiber.Ctx) error
		Settle(c *fiber.Ctx) error
		GetTransactionHistory(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) GetCreditPackages(c *fiber.Ctx) error {
	packages, err := h.paymentService.GetCreditPackages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, packages, fiber.StatusOK, domain.MessageSuccessGetPackages)
}

func (h *paymentHandler) Settle(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SettleRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSettle, err)
	}

	resp, err := h.paymentService.Settle(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, settleStatus(err), settleMessage(err), err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessSettle)
}

// settleStatus distinguishes the caller-actionable rejections (400), the
// retried-request conflict (409) and verification failures (500).
func settleStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderAlreadyProcessed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidTier),
		errors.Is(err, domain.ErrPaymentNotCompleted),
		errors.Is(err, domain.ErrAmountMismatch):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func settleMessage(err error) string {
	if errors.Is(err, domain.ErrOrderAlreadyProcessed) {
		return domain.MessageOrderAlreadyProcessed
	}
	return domain.MessageFailedSettle
}

func (h *paymentHandler) GetTransactionHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	transactions, count, err := h.paymentService.GetTransactionHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetTxHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetTxHistory)
}
