package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/damaloy/marketplace-api/internal/store"
	"github.com/damaloy/marketplace-api/internal/store/storetest"
)

func newTestStore(t *testing.T) (*Store, *storetest.Collection) {
	t.Helper()
	db := storetest.NewDB()
	col := db.Collection("orders")
	s := NewStore(col)
	s.nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	s.randFunc = func() int { return 42 }
	return s, col
}

func TestFormatOrderID(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := FormatOrderID(now, 7)

	if !regexp.MustCompile(`^ORD-\d{8}\d{3}$`).MatchString(id) {
		t.Fatalf("unexpected order id format: %s", id)
	}
	ms := fmt.Sprintf("%d", now.UnixMilli())
	want := "ORD-" + ms[len(ms)-8:] + "007"
	if id != want {
		t.Fatalf("expected %s, got %s", want, id)
	}
}

func TestCreate_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	order, err := s.Create(context.Background(), CreateInput{
		Email: "buyer@example.com",
		Items: []OrderItem{
			{ProductID: "p-1", ProductName: "Rice", Price: 125, Quantity: 2, TotalPrice: 250},
			{ProductID: "p-2", ProductName: "Lentils", Price: 300, Quantity: 1, TotalPrice: 300},
		},
		TotalAmount:    650,
		DeliveryOption: "express",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if order.Subtotal != 550 {
		t.Fatalf("expected computed subtotal 550, got %v", order.Subtotal)
	}
	if order.DeliveryFee != FeeExpress {
		t.Fatalf("expected express fee %d, got %v", FeeExpress, order.DeliveryFee)
	}
	if order.Status != StatusPending || order.PaymentStatus != StatusPending {
		t.Fatalf("expected pending status, got %s/%s", order.Status, order.PaymentStatus)
	}
	if order.UserEmail != "buyer@example.com" || order.Email != "buyer@example.com" {
		t.Fatalf("expected both email fields populated, got %q/%q", order.UserEmail, order.Email)
	}
	if order.ContactInfo.Email != "buyer@example.com" {
		t.Fatalf("expected contact fallback to buyer email, got %q", order.ContactInfo.Email)
	}
	if len(order.StatusHistory) != 1 {
		t.Fatalf("expected one history entry, got %d", len(order.StatusHistory))
	}
	h := order.StatusHistory[0]
	if h.Status != HistoryCreated || h.Message != "Order created successfully" {
		t.Fatalf("unexpected initial history entry: %+v", h)
	}
}

func TestCreate_DeliveryFees(t *testing.T) {
	cases := []struct {
		option string
		want   float64
	}{
		{"express", FeeExpress},
		{"next-day", FeeNextDay},
		{"standard", FeeDefault},
		{"", FeeDefault},
	}
	for _, tc := range cases {
		if got := FeeForOption(tc.option); got != tc.want {
			t.Fatalf("option %q: expected fee %v, got %v", tc.option, tc.want, got)
		}
	}
}

func TestCreate_PaidStatusSetsPaymentStatus(t *testing.T) {
	s, _ := newTestStore(t)

	order, err := s.Create(context.Background(), CreateInput{
		Email:       "buyer@example.com",
		Items:       []OrderItem{{ProductID: "p-1", ProductName: "Rice", Price: 100, Quantity: 1, TotalPrice: 100}},
		TotalAmount: 100,
		Status:      StatusPaid,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.PaymentStatus != StatusPaid {
		t.Fatalf("expected paymentStatus paid, got %s", order.PaymentStatus)
	}
}

func TestGet_ByHexAndByOrderID(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Create(context.Background(), CreateInput{
		Email:       "buyer@example.com",
		Items:       []OrderItem{{ProductID: "p-1", ProductName: "Rice", Price: 100, Quantity: 1, TotalPrice: 100}},
		TotalAmount: 100,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byHex, err := s.Get(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("get by hex failed: %v", err)
	}
	byOrderID, err := s.Get(context.Background(), created.OrderID)
	if err != nil {
		t.Fatalf("get by order id failed: %v", err)
	}
	if byHex.OrderID != byOrderID.OrderID {
		t.Fatalf("lookups disagree: %s vs %s", byHex.OrderID, byOrderID.OrderID)
	}

	if _, err := s.Get(context.Background(), "ORD-does-not-exist"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_Pagination(t *testing.T) {
	s, _ := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		i := i
		s.nowFunc = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if _, err := s.Create(context.Background(), CreateInput{
			Email:       "buyer@example.com",
			Items:       []OrderItem{{ProductID: "p", ProductName: "x", Price: 10, Quantity: 1, TotalPrice: 10}},
			TotalAmount: 10,
		}); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	page, err := s.List(context.Background(), ListFilter{Email: "buyer@example.com", Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 orders on page 2, got %d", len(page.Orders))
	}
	if page.Total != 5 || page.TotalPages != 3 {
		t.Fatalf("expected total 5 over 3 pages, got %d/%d", page.Total, page.TotalPages)
	}
	// newest first: page 2 holds the 3rd and 2nd creations
	if page.Orders[0].CreatedAt.Before(page.Orders[1].CreatedAt) {
		t.Fatal("expected newest-first ordering within page")
	}

	empty, err := s.List(context.Background(), ListFilter{Email: "other@example.com"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("expected no orders for other email, got %d", empty.Total)
	}
}

func TestUpdateStatus_AppendsHistory(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Create(context.Background(), CreateInput{
		Email:       "buyer@example.com",
		Items:       []OrderItem{{ProductID: "p", ProductName: "x", Price: 10, Quantity: 1, TotalPrice: 10}},
		TotalAmount: 10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.UpdateStatus(context.Background(), created.OrderID, StatusUpdate{Status: "shipped"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.Get(context.Background(), created.OrderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != "shipped" {
		t.Fatalf("expected status shipped, got %s", got.Status)
	}
	if len(got.StatusHistory) != 2 {
		t.Fatalf("expected history to grow to 2 entries, got %d", len(got.StatusHistory))
	}
	last := got.StatusHistory[1]
	if last.Status != "shipped" || last.Message != "Order status updated to shipped" {
		t.Fatalf("unexpected appended entry: %+v", last)
	}
}

func TestUpdateStatus_PaidSetsPaymentStatus(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Create(context.Background(), CreateInput{
		Email:       "buyer@example.com",
		Items:       []OrderItem{{ProductID: "p", ProductName: "x", Price: 10, Quantity: 1, TotalPrice: 10}},
		TotalAmount: 10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.UpdateStatus(context.Background(), created.ID.Hex(), StatusUpdate{
		Status:         StatusPaid,
		PaymentDetails: &PaymentDetails{TransactionID: "txn-1", PaymentMethod: "card"},
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.Get(context.Background(), created.OrderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.PaymentStatus != StatusPaid {
		t.Fatalf("expected paymentStatus paid, got %s", got.PaymentStatus)
	}
	if got.PaymentDetails == nil || got.PaymentDetails.TransactionID != "txn-1" {
		t.Fatalf("expected payment details attached, got %+v", got.PaymentDetails)
	}
}

func TestUpdateStatus_NoStatusKeepsCurrent(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Create(context.Background(), CreateInput{
		Email:       "buyer@example.com",
		Items:       []OrderItem{{ProductID: "p", ProductName: "x", Price: 10, Quantity: 1, TotalPrice: 10}},
		TotalAmount: 10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.UpdateStatus(context.Background(), created.OrderID, StatusUpdate{Message: "note added"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.Get(context.Background(), created.OrderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("expected status unchanged, got %s", got.Status)
	}
	last := got.StatusHistory[len(got.StatusHistory)-1]
	if last.Status != StatusPending || last.Message != "note added" {
		t.Fatalf("expected entry carrying current status, got %+v", last)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.UpdateStatus(context.Background(), "ORD-missing", StatusUpdate{Status: "shipped"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
