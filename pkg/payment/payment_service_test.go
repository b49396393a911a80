package payment

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePaymentRepository struct {
	byOrderID map[string]*entities.Transaction
	all       []*entities.Transaction
}

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{byOrderID: make(map[string]*entities.Transaction)}
}

func (f *fakePaymentRepository) CreateTransaction(ctx context.Context, tx *entities.Transaction) error {
	if _, exists := f.byOrderID[tx.ExternalOrderID]; exists {
		return domain.ErrOrderAlreadyProcessed
	}
	f.byOrderID[tx.ExternalOrderID] = tx
	f.all = append(f.all, tx)
	return nil
}

func (f *fakePaymentRepository) GetTransactionByOrderID(ctx context.Context, externalOrderID string) (*entities.Transaction, error) {
	tx, ok := f.byOrderID[externalOrderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tx, nil
}

func (f *fakePaymentRepository) GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.Transaction, int64, error) {
	var result []*entities.Transaction
	for _, tx := range f.all {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	return result, int64(len(result)), nil
}

type fakeCreditService struct {
	balances       map[string]int
	totalPurchased map[string]int
	creditCalls    int
}

func newFakeCreditService() *fakeCreditService {
	return &fakeCreditService{
		balances:       make(map[string]int),
		totalPurchased: make(map[string]int),
	}
}

func (f *fakeCreditService) GetBalance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	return &domain.CreditBalance{
		Credits:               f.balances[userID],
		TotalCreditsPurchased: f.totalPurchased[userID],
	}, nil
}

func (f *fakeCreditService) Credit(ctx context.Context, userID string, amount int) (int, error) {
	f.creditCalls++
	f.balances[userID] += amount
	f.totalPurchased[userID] += amount
	return f.balances[userID], nil
}

func (f *fakeCreditService) Debit(ctx context.Context, userID string, amount int) (int, error) {
	if f.balances[userID] < amount {
		return 0, domain.ErrInsufficientCredits
	}
	f.balances[userID] -= amount
	return f.balances[userID], nil
}

func (f *fakeCreditService) Refund(ctx context.Context, userID string, amount int) (int, error) {
	f.balances[userID] += amount
	return f.balances[userID], nil
}

type fakePayPalClient struct {
	orders map[string]*domain.PayPalOrder
	err    error
}

func (f *fakePayPalClient) GetOrder(ctx context.Context, orderID string) (*domain.PayPalOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func newSettleFixture(orders map[string]*domain.PayPalOrder) (PaymentService, *fakePaymentRepository, *fakeCreditService) {
	repo := newFakePaymentRepository()
	credits := newFakeCreditService()
	service := NewPaymentService(repo, credits, &fakePayPalClient{orders: orders})
	return service, repo, credits
}

func TestSettleBasicTier(t *testing.T) {
	service, repo, credits := newSettleFixture(map[string]*domain.PayPalOrder{
		"ORDER-1": {ID: "ORDER-1", Status: "COMPLETED", AmountUSD: 35.00},
	})

	resp, err := service.Settle(context.Background(), domain.SettleRequest{
		ExternalOrderID: "ORDER-1",
		Tier:            "basic",
	}, "user_1")
	require.NoError(t, err)
	require.Equal(t, 200, resp.CreditsAdded)
	require.Equal(t, 200, resp.NewBalance)
	require.Equal(t, 200, credits.totalPurchased["user_1"])

	require.Len(t, repo.all, 1)
	require.Equal(t, domain.TransactionStatusCompleted, repo.all[0].Status)
	require.Equal(t, 200, repo.all[0].CreditsPurchased)
}

func TestSettleIsIdempotent(t *testing.T) {
	service, repo, credits := newSettleFixture(map[string]*domain.PayPalOrder{
		"ORDER-1": {ID: "ORDER-1", Status: "COMPLETED", AmountUSD: 35.00},
	})
	ctx := context.Background()
	req := domain.SettleRequest{ExternalOrderID: "ORDER-1", Tier: "basic"}

	_, err := service.Settle(ctx, req, "user_1")
	require.NoError(t, err)

	_, err = service.Settle(ctx, req, "user_1")
	require.ErrorIs(t, err, domain.ErrOrderAlreadyProcessed)

	require.Equal(t, 1, credits.creditCalls, "ledger must be credited exactly once per order")
	require.Len(t, repo.all, 1)
}

func TestSettleInvalidTier(t *testing.T) {
	service, repo, credits := newSettleFixture(nil)

	_, err := service.Settle(context.Background(), domain.SettleRequest{
		ExternalOrderID: "ORDER-1",
		Tier:            "platinum",
	}, "user_1")
	require.ErrorIs(t, err, domain.ErrInvalidTier)
	require.Zero(t, credits.creditCalls)
	require.Empty(t, repo.all)
}

func TestSettlePaymentNotCompleted(t *testing.T) {
	service, repo, credits := newSettleFixture(map[string]*domain.PayPalOrder{
		"ORDER-1": {ID: "ORDER-1", Status: "CREATED", AmountUSD: 35.00},
	})

	_, err := service.Settle(context.Background(), domain.SettleRequest{
		ExternalOrderID: "ORDER-1",
		Tier:            "basic",
	}, "user_1")
	require.ErrorIs(t, err, domain.ErrPaymentNotCompleted)
	require.Zero(t, credits.creditCalls)

	// The rejection leaves an audit record with the reported amount.
	require.Len(t, repo.all, 1)
	require.Equal(t, domain.TransactionStatusFailed, repo.all[0].Status)
	require.Equal(t, 35.00, repo.all[0].AmountUSD)
}

func TestSettleAmountMismatch(t *testing.T) {
	service, repo, credits := newSettleFixture(map[string]*domain.PayPalOrder{
		"ORDER-1": {ID: "ORDER-1", Status: "COMPLETED", AmountUSD: 9.00},
	})

	_, err := service.Settle(context.Background(), domain.SettleRequest{
		ExternalOrderID: "ORDER-1",
		Tier:            "pro", // $99
	}, "user_1")
	require.ErrorIs(t, err, domain.ErrAmountMismatch)
	require.Zero(t, credits.creditCalls)
	require.Len(t, repo.all, 1)
	require.Equal(t, domain.TransactionStatusFailed, repo.all[0].Status)
	require.Equal(t, 9.00, repo.all[0].AmountUSD, "audit row must record what was actually paid")
}

func TestSettleAmountWithinTolerance(t *testing.T) {
	service, _, _ := newSettleFixture(map[string]*domain.PayPalOrder{
		"ORDER-1": {ID: "ORDER-1", Status: "COMPLETED", AmountUSD: 35.004},
	})

	_, err := service.Settle(context.Background(), domain.SettleRequest{
		ExternalOrderID: "ORDER-1",
		Tier:            "basic",
	}, "user_1")
	require.NoError(t, err)
}

func TestSettleVerificationFailure(t *testing.T) {
	repo := newFakePaymentRepository()
	credits := newFakeCreditService()
	service := NewPaymentService(repo, credits, &fakePayPalClient{err: errors.New("connection refused")})

	_, err := service.Settle(context.Background(), domain.SettleRequest{
		ExternalOrderID: "ORDER-1",
		Tier:            "basic",
	}, "user_1")
	require.ErrorIs(t, err, domain.ErrPaymentVerification)
	require.Zero(t, credits.creditCalls)

	// Money is never silently lost without a record.
	require.Len(t, repo.all, 1)
	require.Equal(t, domain.TransactionStatusFailed, repo.all[0].Status)
	require.Zero(t, repo.all[0].AmountUSD, "no verified amount when the lookup failed")
}

func TestConservationOfTotalPurchased(t *testing.T) {
	service, repo, credits := newSettleFixture(map[string]*domain.PayPalOrder{
		"ORDER-1": {ID: "ORDER-1", Status: "COMPLETED", AmountUSD: 35.00},
		"ORDER-2": {ID: "ORDER-2", Status: "COMPLETED", AmountUSD: 99.00},
		"ORDER-3": {ID: "ORDER-3", Status: "CREATED", AmountUSD: 35.00},
	})
	ctx := context.Background()

	_, err := service.Settle(ctx, domain.SettleRequest{ExternalOrderID: "ORDER-1", Tier: "basic"}, "user_1")
	require.NoError(t, err)
	_, err = service.Settle(ctx, domain.SettleRequest{ExternalOrderID: "ORDER-2", Tier: "pro"}, "user_1")
	require.NoError(t, err)
	_, err = service.Settle(ctx, domain.SettleRequest{ExternalOrderID: "ORDER-3", Tier: "basic"}, "user_1")
	require.ErrorIs(t, err, domain.ErrPaymentNotCompleted)

	sum := 0
	for _, tx := range repo.all {
		if tx.Status == domain.TransactionStatusCompleted {
			sum += tx.CreditsPurchased
		}
	}
	require.Equal(t, sum, credits.totalPurchased["user_1"])
}
