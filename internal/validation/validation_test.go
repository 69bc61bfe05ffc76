package validation

import "testing"

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		Email: "buyer@example.com",
		Items: []OrderItemRequest{
			{ProductID: "p-1", ProductName: "Rice 5kg", Price: 125.0, Quantity: 2, TotalPrice: 250.0},
			{ProductID: "p-2", ProductName: "Lentils", Price: 300.0, Quantity: 1, TotalPrice: 300.0},
		},
		TotalAmount:    600.0,
		DeliveryOption: "express",
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCreateOrderRequest_LineTotalMismatch(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		Email: "buyer@example.com",
		Items: []OrderItemRequest{
			{ProductID: "p-1", ProductName: "Rice 5kg", Price: 125.0, Quantity: 2, TotalPrice: 200.0},
		},
		TotalAmount: 250.0,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for line total mismatch, got nil")
	}
}

func TestCreateOrderRequest_MissingFields(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		// Email missing
		Items:       []OrderItemRequest{},
		TotalAmount: 0,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
}

func TestAddCartRequest_ObjectID(t *testing.T) {
	v := New()

	ok := AddCartRequest{Email: "a@b.com", ProductID: "64b8f0a2e13f4a0012345678", Quantity: 2}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}

	bad := AddCartRequest{Email: "a@b.com", ProductID: "not-an-id"}
	if err := v.Struct(bad); err == nil {
		t.Fatal("expected validation error for malformed product id, got nil")
	}
}

func TestCreateIntentRequest_Amount(t *testing.T) {
	v := New()

	if err := v.Struct(CreateIntentRequest{Amount: 5500}); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
	if err := v.Struct(CreateIntentRequest{Amount: 0}); err == nil {
		t.Fatal("expected validation error for zero amount, got nil")
	}
}

func TestCreateReviewRequest_RatingBounds(t *testing.T) {
	v := New()

	base := CreateReviewRequest{
		Rating:          5,
		Comment:         "great value",
		PriceAssessment: "fair",
		User:            &ReviewUserRequest{Name: "A", Email: "a@b.com"},
	}
	if err := v.Struct(base); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}

	base.Rating = 6
	if err := v.Struct(base); err == nil {
		t.Fatal("expected validation error for rating above 5, got nil")
	}
}
