package payment

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/utils"
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/plutov/paypal/v4"
)

type (
	// PayPalClient fetches the authoritative state of an order from the
	// processor. Settlement never trusts client-supplied amounts.
	PayPalClient interface {
		GetOrder(ctx context.Context, orderID string) (*domain.PayPalOrder, error)
	}

	payPalClient struct {
		client *paypal.Client

		mu     sync.Mutex
		authed bool
	}
)

func NewPayPalClient() (PayPalClient, error) {
	return newPayPalClient(
		utils.GetConfig("PAYPAL_CLIENT_ID"),
		utils.GetConfig("PAYPAL_CLIENT_SECRET"),
		utils.GetConfig("PAYPAL_BASE_URL"),
	)
}

func newPayPalClient(clientID, clientSecret, baseURL string) (PayPalClient, error) {
	client, err := paypal.NewClient(clientID, clientSecret, baseURL)
	if err != nil {
		return nil, err
	}
	return &payPalClient{client: client}, nil
}

// ensureAuth runs the client-credentials flow on the first request; the SDK
// refreshes the token before expiry on its own after that.
func (c *payPalClient) ensureAuth(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authed {
		return nil
	}
	if _, err := c.client.GetAccessToken(ctx); err != nil {
		return err
	}
	c.authed = true
	return nil
}

func (c *payPalClient) GetOrder(ctx context.Context, orderID string) (*domain.PayPalOrder, error) {
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}

	order, err := c.client.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(order.PurchaseUnits) == 0 || order.PurchaseUnits[0].Amount == nil {
		return nil, fmt.Errorf("paypal order %s has no purchase amount", orderID)
	}

	amount, err := strconv.ParseFloat(order.PurchaseUnits[0].Amount.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("paypal order %s has invalid amount: %w", orderID, err)
	}

	return &domain.PayPalOrder{
		ID:        order.ID,
		Status:    order.Status,
		AmountUSD: amount,
	}, nil
}
