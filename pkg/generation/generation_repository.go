package generation

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	GenerationRepository interface {
		CreateGeneration(ctx context.Context, generation *entities.Generation) error
		GetGenerationByID(ctx context.Context, id string) (*entities.Generation, error)
		GetGenerationForUser(ctx context.Context, id string, userID string) (*entities.Generation, error)
		GetUserGenerations(ctx context.Context, userID string, page, limit int) ([]*entities.Generation, int64, error)
		MarkCompleted(ctx context.Context, id string, images datatypes.JSON) error
		MarkFailed(ctx context.Context, id string, reason string) error
		FindStaleProcessing(ctx context.Context, olderThan time.Time) ([]*entities.Generation, error)
	}

	generationRepository struct {
		db *gorm.DB
	}
)

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{
		db: db,
	}
}

func (r *generationRepository) CreateGeneration(ctx context.Context, generation *entities.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *generationRepository) GetGenerationByID(ctx context.Context, id string) (*entities.Generation, error) {
	var generation entities.Generation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&generation).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

// GetGenerationForUser scopes the lookup to the requesting user so a record
// belonging to someone else is indistinguishable from a missing one.
func (r *generationRepository) GetGenerationForUser(ctx context.Context, id string, userID string) (*entities.Generation, error) {
	var generation entities.Generation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&generation).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

func (r *generationRepository) GetUserGenerations(ctx context.Context, userID string, page, limit int) ([]*entities.Generation, int64, error) {
	var generations []*entities.Generation
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Generation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&generations).Error; err != nil {
		return nil, 0, err
	}

	return generations, count, nil
}

// MarkCompleted flips a processing record to completed. The status condition
// in the WHERE clause is the guard against duplicate or replayed callbacks:
// only one update can win, every later attempt affects zero rows.
func (r *generationRepository) MarkCompleted(ctx context.Context, id string, images datatypes.JSON) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Generation{}).
		Where("id = ? AND status = ?", id, domain.GenerationStatusProcessing).
		UpdateColumns(map[string]interface{}{
			"status":           domain.GenerationStatusCompleted,
			"generated_images": images,
			"completed_at":     now,
			"updated_at":       now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidGenerationState
	}
	return nil
}

func (r *generationRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Generation{}).
		Where("id = ? AND status = ?", id, domain.GenerationStatusProcessing).
		UpdateColumns(map[string]interface{}{
			"status":         domain.GenerationStatusFailed,
			"failure_reason": reason,
			"completed_at":   now,
			"updated_at":     now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidGenerationState
	}
	return nil
}

func (r *generationRepository) FindStaleProcessing(ctx context.Context, olderThan time.Time) ([]*entities.Generation, error) {
	var generations []*entities.Generation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.GenerationStatusProcessing, olderThan).
		Find(&generations).Error; err != nil {
		return nil, err
	}
	return generations, nil
}
