package credit

import (
	"StyleShot-Backend/domain"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	// CreditService is the ledger. Credit is only called by payment
	// settlement after a verified capture; Debit/Refund are only called by
	// the generation orchestrator.
	CreditService interface {
		GetBalance(ctx context.Context, userID string) (*domain.CreditBalance, error)
		Credit(ctx context.Context, userID string, amount int) (int, error)
		Debit(ctx context.Context, userID string, amount int) (int, error)
		Refund(ctx context.Context, userID string, amount int) (int, error)
	}

	creditService struct {
		creditRepository CreditRepository
	}
)

func NewCreditService(creditRepository CreditRepository) CreditService {
	return &creditService{
		creditRepository: creditRepository,
	}
}

// GetBalance reads the ledger row. Accounts that have never been written get
// the free allotment as a read-time default; no row is created here.
func (s *creditService) GetBalance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	user, err := s.creditRepository.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.CreditBalance{
				Credits:               domain.DefaultFreeCredits,
				TotalCreditsPurchased: 0,
			}, nil
		}
		return nil, err
	}

	return &domain.CreditBalance{
		Credits:               user.Credits,
		TotalCreditsPurchased: user.TotalCreditsPurchased,
	}, nil
}

func (s *creditService) Credit(ctx context.Context, userID string, amount int) (int, error) {
	if err := s.creditRepository.EnsureUser(ctx, userID); err != nil {
		return 0, err
	}
	if err := s.creditRepository.AddPurchasedCredits(ctx, userID, amount); err != nil {
		return 0, err
	}
	return s.currentBalance(ctx, userID)
}

func (s *creditService) Debit(ctx context.Context, userID string, amount int) (int, error) {
	if err := s.creditRepository.EnsureUser(ctx, userID); err != nil {
		return 0, err
	}
	if err := s.creditRepository.DeductCredits(ctx, userID, amount); err != nil {
		return 0, err
	}
	return s.currentBalance(ctx, userID)
}

func (s *creditService) Refund(ctx context.Context, userID string, amount int) (int, error) {
	if err := s.creditRepository.AddCredits(ctx, userID, amount); err != nil {
		return 0, err
	}
	return s.currentBalance(ctx, userID)
}

func (s *creditService) currentBalance(ctx context.Context, userID string) (int, error) {
	user, err := s.creditRepository.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Credits, nil
}
