package handlers

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/api/presenters"
	"StyleShot-Backend/pkg/generation"
	"crypto/subtle"
	"errors"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GenerationHandler interface {
		Submit(c *fiber.Ctx) error
		GetStatus(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		EngineCallback(c *fiber.Ctx) error
	}

	generationHandler struct {
		generationService generation.GenerationService
		validator         *validator.Validate
	}
)

func NewGenerationHandler(generationService generation.GenerationService, validator *validator.Validate) GenerationHandler {
	return &generationHandler{
		generationService: generationService,
		validator:         validator,
	}
}

func (h *generationHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitGenerationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitGeneration, err)
	}

	resp, err := h.generationService.Submit(c.Context(), *req, userID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrInsufficientCredits) || errors.Is(err, domain.ErrInvalidGenerationKind) {
			status = fiber.StatusBadRequest
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedSubmitGeneration, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessSubmitGeneration)
}

func (h *generationHandler) GetStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	generationID := c.Params("id")

	resp, err := h.generationService.GetStatus(c.Context(), generationID, userID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrGenerationNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetGeneration, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetGeneration)
}

func (h *generationHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	generations, count, err := h.generationService.GetHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetGeneration, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"generations": generations,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetGenerations)
}

// EngineCallback is the inbound completion/failure webhook from the
// generation engine, authenticated by the shared callback token. A callback
// for a record that already reached a terminal state is answered with 409 so
// engine retries see "already done" rather than an error.
func (h *generationHandler) EngineCallback(c *fiber.Ctx) error {
	token := c.Get("X-Callback-Token")
	expected := os.Getenv("ENGINE_CALLBACK_TOKEN")
	if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedCallback, domain.ErrTokenInvalid)
	}

	req := new(domain.GenerationCallbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCallback, err)
	}

	var err error
	if req.Error != "" {
		err = h.generationService.ReportFailure(c.Context(), req.GenerationID, req.Error)
	} else if req.ImageURL != "" {
		err = h.generationService.ReportCompletion(c.Context(), req.GenerationID, req.ImageURL)
	} else {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCallback, domain.ErrGenerationEngineFailure)
	}

	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrGenerationNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrInvalidGenerationState):
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedCallback, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCallback)
}
