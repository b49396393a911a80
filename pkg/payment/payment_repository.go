package payment

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	PaymentRepository interface {
		CreateTransaction(ctx context.Context, tx *entities.Transaction) error
		GetTransactionByOrderID(ctx context.Context, externalOrderID string) (*entities.Transaction, error)
		GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.Transaction, int64, error)
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// CreateTransaction inserts the append-only settlement record. The unique
// index on external_order_id is the idempotency guard; a concurrent
// duplicate surfaces as ErrOrderAlreadyProcessed.
func (r *paymentRepository) CreateTransaction(ctx context.Context, tx *entities.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrOrderAlreadyProcessed
		}
		return err
	}
	return nil
}

func (r *paymentRepository) GetTransactionByOrderID(ctx context.Context, externalOrderID string) (*entities.Transaction, error) {
	var tx entities.Transaction
	if err := r.db.WithContext(ctx).
		Where("external_order_id = ?", externalOrderID).
		First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *paymentRepository) GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.Transaction, int64, error) {
	var transactions []*entities.Transaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
