package domain

import (
	"errors"
)

const (
	// Free allotment for accounts that have never purchased.
	DefaultFreeCredits = 3

	// Generation costs
	CostPhotoGeneration = 1
	CostVideoGeneration = 10
)

var (
	MessageSuccessGetBalance = "credit balance retrieved successfully"
	MessageFailedGetBalance  = "failed to retrieve credit balance"

	ErrInsufficientCredits = errors.New("insufficient credits")
)

type (
	CreditBalance struct {
		Credits               int `json:"credits"`
		TotalCreditsPurchased int `json:"total_credits_purchased"`
	}
)
