package payments

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/orders"
	"github.com/damaloy/marketplace-api/internal/store"
)

// Store persists payments and reconciles the referenced order.
type Store struct {
	payments store.Collection
	orders   store.Collection
	nowFunc  func() time.Time
}

// NewStore creates a payments Store. It needs the orders collection as well
// because recording a payment reconciles the matching order.
func NewStore(payments, orders store.Collection) *Store {
	return &Store{
		payments: payments,
		orders:   orders,
		nowFunc:  time.Now,
	}
}

// RecordInput is the payment-recording payload after validation.
type RecordInput struct {
	OrderID         string
	Email           string
	Amount          float64
	PaymentMethod   string
	TransactionID   string
	PaymentIntentID string
	Status          string
}

// RecordResult reports the new payment id and whether an order was actually
// reconciled. OrderUpdated is false when no order matched the order id; the
// payment document still exists in that case.
type RecordResult struct {
	PaymentID    primitive.ObjectID
	OrderUpdated bool
}

// Record inserts the payment document and then reconciles the referenced
// order (by orderId field only): status and paymentStatus become paid, the
// payment details sub-record is attached, and a payment_received entry is
// appended to the status history in the same write as the field changes.
func (s *Store) Record(ctx context.Context, in RecordInput) (*RecordResult, error) {
	now := s.nowFunc()
	status := in.Status
	if status == "" {
		status = orders.StatusPaid
	}

	p := Payment{
		OrderID:         in.OrderID,
		Email:           in.Email,
		Amount:          in.Amount,
		PaymentMethod:   in.PaymentMethod,
		TransactionID:   in.TransactionID,
		PaymentIntentID: in.PaymentIntentID,
		Status:          status,
		PaymentDate:     now,
		CreatedAt:       now,
	}
	paymentID, err := s.payments.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	details := orders.PaymentDetails{
		PaymentID:       paymentID.Hex(),
		PaymentIntentID: in.PaymentIntentID,
		TransactionID:   in.TransactionID,
		PaymentMethod:   in.PaymentMethod,
		PaidAt:          now,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         orders.StatusPaid,
			"paymentStatus":  orders.StatusPaid,
			"paymentDetails": details,
			"updatedAt":      now,
		},
		"$push": bson.M{
			"statusHistory": orders.StatusEntry{
				Status:    orders.HistoryPaymentReceived,
				Timestamp: now,
				Message:   "Payment successfully processed",
			},
		},
	}
	res, err := s.orders.UpdateOne(ctx, bson.M{"orderId": in.OrderID}, update)
	if err != nil {
		return nil, fmt.Errorf("reconcile order: %w", err)
	}

	return &RecordResult{PaymentID: paymentID, OrderUpdated: res.Modified > 0}, nil
}

// List returns payments newest-first by payment date, optionally filtered by
// payer email.
func (s *Store) List(ctx context.Context, email string) ([]Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	opts := store.FindOptions{Sort: bson.D{{Key: "paymentDate", Value: -1}}}
	list := []Payment{}
	if err := s.payments.Find(ctx, filter, opts, &list); err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	return list, nil
}
