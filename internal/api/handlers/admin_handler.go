package handlers

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/api/presenters"
	"StyleShot-Backend/pkg/admin"
	"StyleShot-Backend/pkg/generation"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// staleGenerationWindow is how long a generation may sit in processing
// before the reconcile sweep treats it as lost.
const staleGenerationWindow = 3 * time.Minute

type (
	AdminHandler interface {
		ListFiles(c *fiber.Ctx) error
		UploadFile(c *fiber.Ctx) error
		DeleteFile(c *fiber.Ctx) error
		ReconcileGenerations(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService      admin.AdminService
		generationService generation.GenerationService
	}
)

func NewAdminHandler(adminService admin.AdminService, generationService generation.GenerationService) AdminHandler {
	return &adminHandler{
		adminService:      adminService,
		generationService: generationService,
	}
}

func adminStatus(err error) int {
	if errors.Is(err, domain.ErrAdminOnly) {
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func (h *adminHandler) ListFiles(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	files, err := h.adminService.ListFiles(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, adminStatus(err), domain.MessageFailedListFiles, err)
	}

	return presenters.SuccessResponse(c, files, fiber.StatusOK, domain.MessageSuccessListFiles)
}

func (h *adminHandler) UploadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFile, domain.ErrFileNotProvided)
	}

	resp, err := h.adminService.UploadFile(c.Context(), userID, file)
	if err != nil {
		return presenters.ErrorResponse(c, adminStatus(err), domain.MessageFailedUploadFile, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUploadFile)
}

func (h *adminHandler) DeleteFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	objectKey := c.Params("*")

	if objectKey == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFile, domain.ErrFileNotProvided)
	}

	if err := h.adminService.DeleteFile(c.Context(), userID, objectKey); err != nil {
		return presenters.ErrorResponse(c, adminStatus(err), domain.MessageFailedDeleteFile, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFile)
}

// ReconcileGenerations flips generations stuck in processing to failed and
// refunds their reservations. The role check lives in the admin service;
// the sweep itself is delegated to the orchestrator.
func (h *adminHandler) ReconcileGenerations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.adminService.RequireAdmin(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, adminStatus(err), domain.MessageUserNotAllowed, err)
	}

	reconciled, err := h.generationService.ReconcileStale(c.Context(), staleGenerationWindow)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedReconcile, err)
	}

	return presenters.SuccessResponse(c, domain.ReconcileResponse{Reconciled: reconciled}, fiber.StatusOK, domain.MessageSuccessReconcile)
}
