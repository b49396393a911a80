package credit

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CreditRepository interface {
		GetUser(ctx context.Context, userID string) (*entities.User, error)
		EnsureUser(ctx context.Context, userID string) error
		AddPurchasedCredits(ctx context.Context, userID string, amount int) error
		AddCredits(ctx context.Context, userID string, amount int) error
		DeductCredits(ctx context.Context, userID string, amount int) error
	}

	creditRepository struct {
		db *gorm.DB
	}
)

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{
		db: db,
	}
}

func (r *creditRepository) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser lazily creates the ledger row with the free allotment. Existing
// rows are left untouched.
func (r *creditRepository) EnsureUser(ctx context.Context, userID string) error {
	user := entities.User{
		ID:      userID,
		Credits: domain.DefaultFreeCredits,
		Role:    domain.RoleUser,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).Error
}

// AddPurchasedCredits bumps credits and total_credits_purchased together in
// a single UPDATE so the two counters can never drift apart.
func (r *creditRepository) AddPurchasedCredits(ctx context.Context, userID string, amount int) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"credits":                 gorm.Expr("credits + ?", amount),
			"total_credits_purchased": gorm.Expr("total_credits_purchased + ?", amount),
		}).Error
}

// AddCredits returns credits to the balance without touching
// total_credits_purchased (refund path).
func (r *creditRepository) AddCredits(ctx context.Context, userID string, amount int) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

// DeductCredits performs a conditional decrement. The WHERE clause carries
// the balance check so two concurrent debits can never both pass it; zero
// affected rows means the balance was too low.
func (r *creditRepository) DeductCredits(ctx context.Context, userID string, amount int) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ? AND credits >= ?", userID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientCredits
	}
	return nil
}
