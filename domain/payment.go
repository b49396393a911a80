package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSettle         = "payment settled successfully"
	MessageSuccessGetPackages    = "credit packages retrieved successfully"
	MessageSuccessGetTxHistory   = "transaction history retrieved successfully"
	MessageFailedSettle          = "failed to settle payment"
	MessageFailedGetTxHistory    = "failed to retrieve transaction history"
	MessageOrderAlreadyProcessed = "order already processed"

	ErrInvalidTier           = errors.New("invalid credit tier")
	ErrOrderAlreadyProcessed = errors.New("order already processed")
	ErrPaymentNotCompleted   = errors.New("payment not completed")
	ErrAmountMismatch        = errors.New("paid amount does not match tier price")
	ErrPaymentVerification   = errors.New("payment verification failed")
)

// AmountToleranceUSD is the largest allowed gap between the tier price and
// the processor-reported capture amount.
const AmountToleranceUSD = 0.01

const (
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type (
	CreditPackage struct {
		Tier     string  `json:"tier"`
		Name     string  `json:"name"`
		PriceUSD float64 `json:"price_usd"`
		Credits  int     `json:"credits"`
	}

	SettleRequest struct {
		ExternalOrderID string `json:"external_order_id" validate:"required"`
		Tier            string `json:"tier" validate:"required"`
		Email           string `json:"email" validate:"omitempty,email"`
	}

	SettleResponse struct {
		CreditsAdded int `json:"credits_added"`
		NewBalance   int `json:"new_balance"`
	}

	TransactionResponse struct {
		ID               string     `json:"id"`
		ExternalOrderID  string     `json:"external_order_id"`
		Tier             string     `json:"tier"`
		AmountUSD        float64    `json:"amount_usd"`
		CreditsPurchased int        `json:"credits_purchased"`
		Status           string     `json:"status"`
		CreatedAt        time.Time  `json:"created_at"`
		CompletedAt      *time.Time `json:"completed_at,omitempty"`
	}

	// PayPalOrder is the server-side truth fetched from the processor.
	// Client-supplied amounts are never trusted.
	PayPalOrder struct {
		ID        string
		Status    string
		AmountUSD float64
	}
)

var creditPackages = []CreditPackage{
	{Tier: "basic", Name: "Basic", PriceUSD: 35, Credits: 200},
	{Tier: "pro", Name: "Pro", PriceUSD: 99, Credits: 800},
	{Tier: "studio", Name: "Studio", PriceUSD: 199, Credits: 2000},
}

func CreditPackages() []CreditPackage {
	packages := make([]CreditPackage, len(creditPackages))
	copy(packages, creditPackages)
	return packages
}

func CreditPackageByTier(tier string) (CreditPackage, bool) {
	for _, pkg := range creditPackages {
		if pkg.Tier == tier {
			return pkg, true
		}
	}
	return CreditPackage{}, false
}
