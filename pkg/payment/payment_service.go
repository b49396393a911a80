package payment

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"StyleShot-Backend/internal/utils/mailing"
	"StyleShot-Backend/pkg/credit"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PaymentService interface {
		Settle(ctx context.Context, req domain.SettleRequest, userID string) (*domain.SettleResponse, error)
		GetCreditPackages(ctx context.Context) ([]domain.CreditPackage, error)
		GetTransactionHistory(ctx context.Context, userID string, page, limit int) ([]*domain.TransactionResponse, int64, error)
	}

	paymentService struct {
		paymentRepository PaymentRepository
		creditService     credit.CreditService
		paypalClient      PayPalClient
	}
)

func NewPaymentService(paymentRepository PaymentRepository, creditService credit.CreditService, paypalClient PayPalClient) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		creditService:     creditService,
		paypalClient:      paypalClient,
	}
}

// Settle verifies a PayPal order server-side and credits the ledger exactly
// once per external order id. The completed transaction row is written
// before the ledger mutation: a crash between the two leaves an auditable
// uncredited transaction, never an unrecorded credit.
func (s *paymentService) Settle(ctx context.Context, req domain.SettleRequest, userID string) (*domain.SettleResponse, error) {
	pkg, ok := domain.CreditPackageByTier(req.Tier)
	if !ok {
		return nil, domain.ErrInvalidTier
	}

	if _, err := s.paymentRepository.GetTransactionByOrderID(ctx, req.ExternalOrderID); err == nil {
		return nil, domain.ErrOrderAlreadyProcessed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order, err := s.paypalClient.GetOrder(ctx, req.ExternalOrderID)
	if err != nil {
		log.Printf("paypal order lookup failed for %s: %v", req.ExternalOrderID, err)
		s.recordFailedTransaction(ctx, userID, req.ExternalOrderID, pkg, 0)
		return nil, domain.ErrPaymentVerification
	}

	if order.Status != "COMPLETED" {
		s.recordFailedTransaction(ctx, userID, req.ExternalOrderID, pkg, order.AmountUSD)
		return nil, domain.ErrPaymentNotCompleted
	}

	if math.Abs(order.AmountUSD-pkg.PriceUSD) > domain.AmountToleranceUSD {
		log.Printf("amount mismatch for order %s: paid %.2f, tier %s costs %.2f",
			req.ExternalOrderID, order.AmountUSD, pkg.Tier, pkg.PriceUSD)
		s.recordFailedTransaction(ctx, userID, req.ExternalOrderID, pkg, order.AmountUSD)
		return nil, domain.ErrAmountMismatch
	}

	now := time.Now()
	transaction := &entities.Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		ExternalOrderID:  req.ExternalOrderID,
		Tier:             pkg.Tier,
		AmountUSD:        order.AmountUSD,
		CreditsPurchased: pkg.Credits,
		Status:           domain.TransactionStatusCompleted,
		CompletedAt:      &now,
	}
	if err := s.paymentRepository.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	newBalance, err := s.creditService.Credit(ctx, userID, pkg.Credits)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		go s.sendReceipt(req.Email, pkg)
	}

	return &domain.SettleResponse{
		CreditsAdded: pkg.Credits,
		NewBalance:   newBalance,
	}, nil
}

// recordFailedTransaction keeps an audit trail for every rejected
// settlement attempt. amountUSD is what the processor reported as paid,
// zero when the lookup itself failed. A write error here must not mask
// the original rejection, so it is only logged.
func (s *paymentService) recordFailedTransaction(ctx context.Context, userID, externalOrderID string, pkg domain.CreditPackage, amountUSD float64) {
	transaction := &entities.Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		ExternalOrderID:  externalOrderID,
		Tier:             pkg.Tier,
		AmountUSD:        amountUSD,
		CreditsPurchased: 0,
		Status:           domain.TransactionStatusFailed,
	}
	if err := s.paymentRepository.CreateTransaction(ctx, transaction); err != nil {
		log.Printf("failed to record failed transaction for order %s: %v", externalOrderID, err)
	}
}

func (s *paymentService) sendReceipt(email string, pkg domain.CreditPackage) {
	subject := "Your StyleShot credit purchase"
	body := fmt.Sprintf(
		"<p>Thanks for your purchase!</p><p>%s package: %d credits for $%.2f.</p>",
		pkg.Name, pkg.Credits, pkg.PriceUSD,
	)
	if err := mailing.SendMail(email, subject, body); err != nil {
		log.Printf("failed to send receipt to %s: %v", email, err)
	}
}

func (s *paymentService) GetCreditPackages(ctx context.Context) ([]domain.CreditPackage, error) {
	return domain.CreditPackages(), nil
}

func (s *paymentService) GetTransactionHistory(ctx context.Context, userID string, page, limit int) ([]*domain.TransactionResponse, int64, error) {
	transactions, count, err := s.paymentRepository.GetUserTransactions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, &domain.TransactionResponse{
			ID:               tx.ID.String(),
			ExternalOrderID:  tx.ExternalOrderID,
			Tier:             tx.Tier,
			AmountUSD:        tx.AmountUSD,
			CreditsPurchased: tx.CreditsPurchased,
			Status:           tx.Status,
			CreatedAt:        tx.CreatedAt,
			CompletedAt:      tx.CompletedAt,
		})
	}

	return result, count, nil
}
