package domain

import (
	"errors"
	"time"
)

const (
	GenerationKindPhoto = "photo"
	GenerationKindVideo = "video"

	GenerationStatusProcessing = "processing"
	GenerationStatusCompleted  = "completed"
	GenerationStatusFailed     = "failed"
)

var (
	MessageSuccessSubmitGeneration = "generation submitted successfully"
	MessageSuccessGetGeneration    = "generation status retrieved successfully"
	MessageSuccessGetGenerations   = "generation history retrieved successfully"
	MessageSuccessCallback         = "generation callback processed"
	MessageSuccessReconcile        = "stale generations reconciled"
	MessageFailedSubmitGeneration  = "failed to submit generation"
	MessageFailedGetGeneration     = "failed to retrieve generation status"
	MessageFailedCallback          = "failed to process generation callback"
	MessageFailedReconcile         = "failed to reconcile stale generations"

	ErrGenerationNotFound      = errors.New("generation not found")
	ErrInvalidGenerationState  = errors.New("generation is no longer processing")
	ErrInvalidGenerationKind   = errors.New("invalid generation kind")
	ErrGenerationEngineFailure = errors.New("generation engine request failed")
)

type (
	SubmitGenerationRequest struct {
		ImageURL    string `json:"image_url" validate:"required,url"`
		Style       string `json:"style" validate:"required"`
		Kind        string `json:"kind" validate:"omitempty,oneof=photo video"`
		AspectRatio string `json:"aspectRatio" validate:"omitempty"`
		Background  string `json:"background" validate:"omitempty"`
		Lighting    string `json:"lighting" validate:"omitempty"`
		CameraAngle string `json:"cameraAngle" validate:"omitempty"`
	}

	// SubmitGenerationResponse covers both engine reply shapes: when the
	// engine finishes inline, Status is already "completed" and ImageURL is
	// set; otherwise the caller polls with GenerationID.
	SubmitGenerationResponse struct {
		GenerationID string `json:"generation_id"`
		Status       string `json:"status"`
		ImageURL     string `json:"image_url,omitempty"`
	}

	GenerationStatusResponse struct {
		GenerationID    string     `json:"generation_id"`
		Status          string     `json:"status"`
		GeneratedImages []string   `json:"generated_images,omitempty"`
		CreatedAt       time.Time  `json:"created_at"`
		CompletedAt     *time.Time `json:"completed_at,omitempty"`
	}

	GenerationCallbackRequest struct {
		GenerationID string `json:"generation_id" validate:"required,uuid"`
		ImageURL     string `json:"image_url" validate:"omitempty,url"`
		Error        string `json:"error" validate:"omitempty"`
	}

	ReconcileResponse struct {
		Reconciled int `json:"reconciled"`
	}
)

// GenerationCost returns the credit cost for a generation kind.
func GenerationCost(kind string) (int, error) {
	switch kind {
	case GenerationKindPhoto, "":
		return CostPhotoGeneration, nil
	case GenerationKindVideo:
		return CostVideoGeneration, nil
	default:
		return 0, ErrInvalidGenerationKind
	}
}
