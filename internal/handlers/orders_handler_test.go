package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const orderBody = `{
	"email": "buyer@example.com",
	"items": [
		{"productId": "64b8f0a2e13f4a0012345678", "productName": "Hilsha Fish", "price": 550, "quantity": 2, "totalPrice": 1100}
	],
	"totalAmount": 1150,
	"deliveryOption": "standard",
	"paymentMethod": "card"
}`

func TestCreateOrder(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	orderID, _ := body["orderId"].(string)
	require.Regexp(t, `^ORD-\d{11}$`, orderID)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "buyer@example.com", data["email"])
	require.Equal(t, "pending", data["status"])
	require.Equal(t, float64(1150), data["totalAmount"])
}

func TestCreateOrder_ValidationFailed(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", `{"items": []}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Validation failed", body["message"])
}

func TestListOrders_FiltersByEmail(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodGet, "/api/orders?email=buyer@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(1), pagination["page"])
	require.Equal(t, float64(1), pagination["total"])

	w = e.do(t, http.MethodGet, "/api/orders?email=other@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeBody(t, w)["data"])
}

func TestGetOrder_ByOrderID(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeBody(t, w)["orderId"].(string)

	w = e.do(t, http.MethodGet, "/api/orders/"+orderID, "")
	require.Equal(t, http.StatusOK, w.Code)

	// single fetch returns the bare order document
	order := decodeBody(t, w)
	require.Equal(t, orderID, order["orderId"])
	require.Equal(t, "buyer@example.com", order["userEmail"])
}

func TestGetOrder_NotFound(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/orders/64b8f0a2e13f4a0012345678", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Order not found", decodeBody(t, w)["message"])
}

func TestUpdateOrderStatus(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeBody(t, w)["orderId"].(string)

	w = e.do(t, http.MethodPatch, "/api/orders/"+orderID, `{"status": "shipped", "statusMessage": "On the way"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Order updated successfully", decodeBody(t, w)["message"])

	w = e.do(t, http.MethodGet, "/api/orders/"+orderID, "")
	order := decodeBody(t, w)
	require.Equal(t, "shipped", order["status"])

	history, ok := order["statusHistory"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 2)
	last := history[1].(map[string]interface{})
	require.Equal(t, "shipped", last["status"])
	require.Equal(t, "On the way", last["message"])
}

func TestOrderConfirmation(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeBody(t, w)["orderId"].(string)

	w = e.do(t, http.MethodGet, "/user/orders/confirmation/"+orderID, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	require.Equal(t, orderID, data["orderId"])
}
