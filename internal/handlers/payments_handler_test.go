package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/create-payment-intent", `{"amount": 115000}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "cs_test_secret", body["clientSecret"])
	require.Equal(t, "pi_test_123", body["paymentIntentId"])
	require.Equal(t, int64(115000), e.gateway.lastAmount)
}

func TestCreatePaymentIntent_RejectsZeroAmount(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/create-payment-intent", `{"amount": 0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Validation failed", decodeBody(t, w)["message"])
}

func TestRecordPayment_ReconcilesOrder(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeBody(t, w)["orderId"].(string)

	w = e.do(t, http.MethodPost, "/payments", `{
		"orderId": "`+orderID+`",
		"email": "buyer@example.com",
		"amount": 1150,
		"paymentMethod": "card",
		"transactionId": "txn_123"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, true, body["orderUpdated"])
	require.Equal(t, "Payment recorded successfully", body["message"])

	w = e.do(t, http.MethodGet, "/api/orders/"+orderID, "")
	order := decodeBody(t, w)
	require.Equal(t, "paid", order["status"])
	require.Equal(t, "paid", order["paymentStatus"])
}

func TestRecordPayment_OrphanStillStored(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/payments", `{
		"orderId": "ORD-00000000000",
		"email": "buyer@example.com",
		"amount": 500
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, false, body["orderUpdated"])

	w = e.do(t, http.MethodGet, "/payments?email=buyer@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeBody(t, w)["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
}
