package generation

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"StyleShot-Backend/pkg/credit"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	// GenerationService is the orchestrator for the processing -> completed
	// | failed lifecycle. Credits are reserved at submit time and refunded
	// when a generation fails, so a user is never charged for a failed
	// generation and concurrent submissions cannot outrun the balance.
	GenerationService interface {
		Submit(ctx context.Context, req domain.SubmitGenerationRequest, userID string) (*domain.SubmitGenerationResponse, error)
		ReportCompletion(ctx context.Context, generationID string, imageURL string) error
		ReportFailure(ctx context.Context, generationID string, reason string) error
		GetStatus(ctx context.Context, generationID string, userID string) (*domain.GenerationStatusResponse, error)
		GetHistory(ctx context.Context, userID string, page, limit int) ([]*domain.GenerationStatusResponse, int64, error)
		ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error)
	}

	generationService struct {
		generationRepository GenerationRepository
		creditService        credit.CreditService
		engineClient         EngineClient
	}
)

func NewGenerationService(generationRepository GenerationRepository, creditService credit.CreditService, engineClient EngineClient) GenerationService {
	return &generationService{
		generationRepository: generationRepository,
		creditService:        creditService,
		engineClient:         engineClient,
	}
}

func (s *generationService) Submit(ctx context.Context, req domain.SubmitGenerationRequest, userID string) (*domain.SubmitGenerationResponse, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.GenerationKindPhoto
	}
	cost, err := domain.GenerationCost(kind)
	if err != nil {
		return nil, err
	}

	if _, err := s.creditService.Debit(ctx, userID, cost); err != nil {
		return nil, err
	}

	generation := &entities.Generation{
		ID:             uuid.New(),
		UserID:         userID,
		Kind:           kind,
		SourceImageURL: req.ImageURL,
		Style:          req.Style,
		AspectRatio:    req.AspectRatio,
		Background:     req.Background,
		Lighting:       req.Lighting,
		CameraAngle:    req.CameraAngle,
		Status:         domain.GenerationStatusProcessing,
		CreditsCharged: cost,
	}
	if err := s.generationRepository.CreateGeneration(ctx, generation); err != nil {
		// The reservation must not outlive a record we failed to write.
		if _, refundErr := s.creditService.Refund(ctx, userID, cost); refundErr != nil {
			log.Printf("failed to refund %d credits to %s: %v", cost, userID, refundErr)
		}
		return nil, err
	}

	result, err := s.engineClient.Submit(ctx, EngineSubmission{
		GenerationID: generation.ID.String(),
		UserID:       userID,
		ImageURL:     req.ImageURL,
		Style:        req.Style,
		Kind:         kind,
		AspectRatio:  req.AspectRatio,
		Background:   req.Background,
		Lighting:     req.Lighting,
		CameraAngle:  req.CameraAngle,
	})
	if err != nil {
		// Engine errors surface as a failed record, not as a 5xx; the
		// client contract stays "check status".
		log.Printf("engine dispatch failed for generation %s: %v", generation.ID, err)
		if failErr := s.ReportFailure(ctx, generation.ID.String(), "engine dispatch failed"); failErr != nil {
			log.Printf("failed to mark generation %s failed: %v", generation.ID, failErr)
		}
		return &domain.SubmitGenerationResponse{
			GenerationID: generation.ID.String(),
			Status:       domain.GenerationStatusFailed,
		}, nil
	}

	// Fast path: the engine finished inline.
	if result.ImageURL != "" {
		if err := s.ReportCompletion(ctx, generation.ID.String(), result.ImageURL); err != nil {
			return nil, err
		}
		return &domain.SubmitGenerationResponse{
			GenerationID: generation.ID.String(),
			Status:       domain.GenerationStatusCompleted,
			ImageURL:     result.ImageURL,
		}, nil
	}

	return &domain.SubmitGenerationResponse{
		GenerationID: generation.ID.String(),
		Status:       domain.GenerationStatusProcessing,
	}, nil
}

// ReportCompletion handles the engine's success callback. The conditional
// update in the repository rejects callbacks for records that already left
// processing, which makes duplicate and replayed callbacks no-ops.
func (s *generationService) ReportCompletion(ctx context.Context, generationID string, imageURL string) error {
	if _, err := s.generationRepository.GetGenerationByID(ctx, generationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGenerationNotFound
		}
		return err
	}

	images, err := json.Marshal([]string{imageURL})
	if err != nil {
		return err
	}

	return s.generationRepository.MarkCompleted(ctx, generationID, datatypes.JSON(images))
}

// ReportFailure flips the record to failed and refunds the reserved
// credits. The refund happens only when this call won the conditional
// update, so it can never be applied twice.
func (s *generationService) ReportFailure(ctx context.Context, generationID string, reason string) error {
	generation, err := s.generationRepository.GetGenerationByID(ctx, generationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGenerationNotFound
		}
		return err
	}

	if err := s.generationRepository.MarkFailed(ctx, generationID, reason); err != nil {
		return err
	}

	if generation.CreditsCharged > 0 {
		if _, err := s.creditService.Refund(ctx, generation.UserID, generation.CreditsCharged); err != nil {
			log.Printf("failed to refund %d credits to %s for generation %s: %v",
				generation.CreditsCharged, generation.UserID, generationID, err)
		}
	}
	return nil
}

func (s *generationService) GetStatus(ctx context.Context, generationID string, userID string) (*domain.GenerationStatusResponse, error) {
	generation, err := s.generationRepository.GetGenerationForUser(ctx, generationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGenerationNotFound
		}
		return nil, err
	}
	return toStatusResponse(generation), nil
}

func (s *generationService) GetHistory(ctx context.Context, userID string, page, limit int) ([]*domain.GenerationStatusResponse, int64, error) {
	generations, count, err := s.generationRepository.GetUserGenerations(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.GenerationStatusResponse, 0, len(generations))
	for _, generation := range generations {
		result = append(result, toStatusResponse(generation))
	}
	return result, count, nil
}

// ReconcileStale is the administrative sweep for generations stuck in
// processing past the window. Records are only ever expired here, never
// implicitly, so a late success callback loses to the sweep rather than
// the other way around.
func (s *generationService) ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.generationRepository.FindStaleProcessing(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}

	reconciled := 0
	for _, generation := range stale {
		if err := s.ReportFailure(ctx, generation.ID.String(), "timed out"); err != nil {
			// A callback may have landed between the scan and the update.
			if errors.Is(err, domain.ErrInvalidGenerationState) {
				continue
			}
			return reconciled, err
		}
		reconciled++
	}
	return reconciled, nil
}

func toStatusResponse(generation *entities.Generation) *domain.GenerationStatusResponse {
	var images []string
	if len(generation.GeneratedImages) > 0 {
		if err := json.Unmarshal(generation.GeneratedImages, &images); err != nil {
			log.Printf("invalid generated_images payload on generation %s: %v", generation.ID, err)
		}
	}
	return &domain.GenerationStatusResponse{
		GenerationID:    generation.ID.String(),
		Status:          generation.Status,
		GeneratedImages: images,
		CreatedAt:       generation.CreatedAt,
		CompletedAt:     generation.CompletedAt,
	}
}
