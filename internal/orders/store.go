package orders

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// DefaultPageSize applies when a list request carries no limit.
const DefaultPageSize = 50

// Store encapsulates operations on the orders collection.
type Store struct {
	col      store.Collection
	nowFunc  func() time.Time
	randFunc func() int
}

// NewStore creates a new orders Store.
func NewStore(col store.Collection) *Store {
	return &Store{
		col:      col,
		nowFunc:  time.Now,
		randFunc: func() int { return rand.IntN(1000) },
	}
}

// CreateInput carries the order-creation payload after validation. Subtotal
// and DeliveryFee are optional; zero values fall back to the computed
// defaults, matching the stored contract.
type CreateInput struct {
	Email          string
	Items          []OrderItem
	TotalAmount    float64
	DeliveryOption string
	PaymentMethod  string
	Subtotal       float64
	DeliveryFee    float64
	ContactInfo    *ContactInfo
	Status         string
}

// Create persists a new order. The order id is generated here; the initial
// status-history entry records the creation.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Order, error) {
	now := s.nowFunc()

	subtotal := in.Subtotal
	if subtotal == 0 {
		for _, it := range in.Items {
			subtotal += it.TotalPrice
		}
	}
	fee := in.DeliveryFee
	if fee == 0 {
		fee = FeeForOption(in.DeliveryOption)
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	paymentStatus := StatusPending
	if status == StatusPaid {
		paymentStatus = StatusPaid
	}
	contact := ContactInfo{Email: in.Email}
	if in.ContactInfo != nil {
		contact = *in.ContactInfo
	}

	o := Order{
		OrderID:        FormatOrderID(now, s.randFunc()),
		UserEmail:      in.Email,
		Email:          in.Email,
		Items:          in.Items,
		Subtotal:       subtotal,
		DeliveryFee:    fee,
		DeliveryOption: in.DeliveryOption,
		PaymentMethod:  in.PaymentMethod,
		TotalAmount:    in.TotalAmount,
		Status:         status,
		PaymentStatus:  paymentStatus,
		ContactInfo:    contact,
		StatusHistory: []StatusEntry{
			{Status: HistoryCreated, Timestamp: now, Message: "Order created successfully"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.col.InsertOne(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	o.ID = id
	return &o, nil
}

// resolveID builds the lookup filter for a path identifier: a valid
// 24-character hex string targets the storage id, anything else the
// human-readable order id.
func resolveID(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"orderId": id}
}

// Get fetches an order by storage id or order id.
// Returns store.ErrNotFound if no order matches.
func (s *Store) Get(ctx context.Context, idOrOrderID string) (*Order, error) {
	var o Order
	if err := s.col.FindOne(ctx, resolveID(idOrOrderID), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByOrderID fetches an order by the human-readable order id only.
func (s *Store) GetByOrderID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	if err := s.col.FindOne(ctx, bson.M{"orderId": orderID}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListFilter narrows and pages an order listing.
type ListFilter struct {
	Email  string
	Status string
	Page   int64
	Limit  int64
}

// Page is one page of orders with pagination metadata.
type Page struct {
	Orders     []Order
	Total      int64
	Page       int64
	Limit      int64
	TotalPages int64
}

// List returns orders newest-first. An email filter matches either the
// legacy userEmail field or the current email field.
func (s *Store) List(ctx context.Context, f ListFilter) (*Page, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	filter := bson.M{}
	if f.Email != "" {
		filter["$or"] = []bson.M{{"userEmail": f.Email}, {"email": f.Email}}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := store.FindOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  (f.Page - 1) * f.Limit,
		Limit: f.Limit,
	}
	list := []Order{}
	if err := s.col.Find(ctx, filter, opts, &list); err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return &Page{
		Orders:     list,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// StatusUpdate is the mutation applied by UpdateStatus. All fields are
// optional; a history entry is appended regardless.
type StatusUpdate struct {
	Status         string
	PaymentDetails *PaymentDetails
	Message        string
}

// UpdateStatus applies a status transition. Field changes and the history
// append go out in a single write, so a concurrent update cannot drop the
// appended entry. Returns store.ErrNotFound if no order matches.
func (s *Store) UpdateStatus(ctx context.Context, idOrOrderID string, u StatusUpdate) error {
	filter := resolveID(idOrOrderID)
	now := s.nowFunc()

	entryStatus := u.Status
	if entryStatus == "" {
		// no new status: the history entry carries the current one
		var cur Order
		if err := s.col.FindOne(ctx, filter, &cur); err != nil {
			return err
		}
		entryStatus = cur.Status
	}
	msg := u.Message
	if msg == "" {
		msg = fmt.Sprintf("Order status updated to %s", u.Status)
	}

	set := bson.M{"updatedAt": now}
	if u.Status != "" {
		set["status"] = u.Status
		if u.Status == StatusPaid {
			set["paymentStatus"] = StatusPaid
		}
	}
	if u.PaymentDetails != nil {
		set["paymentDetails"] = u.PaymentDetails
	}

	update := bson.M{
		"$set": set,
		"$push": bson.M{
			"statusHistory": StatusEntry{Status: entryStatus, Timestamp: now, Message: msg},
		},
	}
	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.Matched == 0 {
		return store.ErrNotFound
	}
	return nil
}
