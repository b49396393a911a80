package payment

import (
	"StyleShot-Backend/domain"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStubPayPalServer(t *testing.T, order map[string]interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "stub-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer stub-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(order)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetOrderMapsStatusAndAmount(t *testing.T) {
	server := newStubPayPalServer(t, map[string]interface{}{
		"id":     "ORDER-1",
		"status": "COMPLETED",
		"purchase_units": []map[string]interface{}{
			{"amount": map[string]string{"currency_code": "USD", "value": "35.00"}},
		},
	})

	client, err := newPayPalClient("client-id", "client-secret", server.URL)
	require.NoError(t, err)

	order, err := client.GetOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	require.Equal(t, &domain.PayPalOrder{ID: "ORDER-1", Status: "COMPLETED", AmountUSD: 35.00}, order)
}

func TestGetOrderWithoutPurchaseAmount(t *testing.T) {
	server := newStubPayPalServer(t, map[string]interface{}{
		"id":     "ORDER-1",
		"status": "COMPLETED",
	})

	client, err := newPayPalClient("client-id", "client-secret", server.URL)
	require.NoError(t, err)

	_, err = client.GetOrder(context.Background(), "ORDER-1")
	require.Error(t, err)
}
