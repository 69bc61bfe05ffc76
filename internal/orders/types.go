package orders

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Workflow values beyond these (shipped, cancelled, ...) are
// set by callers through the status-update path and stored as-is.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Status-history entry statuses written by this package.
const (
	HistoryCreated         = "created"
	HistoryPaymentReceived = "payment_received"
)

// Delivery fees by delivery option; anything unknown gets the default.
const (
	FeeExpress = 100
	FeeNextDay = 150
	FeeDefault = 50
)

// FeeForOption returns the delivery fee for a delivery option.
func FeeForOption(option string) float64 {
	switch option {
	case "express":
		return FeeExpress
	case "next-day":
		return FeeNextDay
	default:
		return FeeDefault
	}
}

// FormatOrderID builds the human-readable order id: literal prefix, the last
// 8 digits of epoch-millis, and a zero-padded 3-digit random suffix. There is
// no uniqueness check against the store; collisions are possible in principle.
func FormatOrderID(now time.Time, n int) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return fmt.Sprintf("ORD-%s%03d", ms, n%1000)
}

// OrderItem is a line item frozen into the order at creation.
type OrderItem struct {
	ProductID          string  `bson:"productId" json:"productId"`
	ProductName        string  `bson:"productName" json:"productName"`
	Price              float64 `bson:"price" json:"price"`
	Quantity           int     `bson:"quantity" json:"quantity"`
	Photo              string  `bson:"photo" json:"photo"`
	MarketName         string  `bson:"marketName" json:"marketName"`
	ProductDescription string  `bson:"productDescription" json:"productDescription"`
	TotalPrice         float64 `bson:"totalPrice" json:"totalPrice"`
}

// StatusEntry is one record of the append-only status history.
type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Message   string    `bson:"message" json:"message"`
}

// ContactInfo is the purchaser contact block.
type ContactInfo struct {
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// PaymentDetails is attached once a payment has been recorded against the
// order. PaymentID is the hex form of the payment document id.
type PaymentDetails struct {
	PaymentID       string    `bson:"paymentId" json:"paymentId"`
	PaymentIntentID string    `bson:"paymentIntentId" json:"paymentIntentId"`
	TransactionID   string    `bson:"transactionId" json:"transactionId"`
	PaymentMethod   string    `bson:"paymentMethod" json:"paymentMethod"`
	PaidAt          time.Time `bson:"paidAt" json:"paidAt"`
}

// Order is the document stored in the orders collection. UserEmail and Email
// carry the same value; both are kept for client compatibility.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID        string             `bson:"orderId" json:"orderId"`
	UserEmail      string             `bson:"userEmail" json:"userEmail"`
	Email          string             `bson:"email" json:"email"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee    float64            `bson:"deliveryFee" json:"deliveryFee"`
	DeliveryOption string             `bson:"deliveryOption" json:"deliveryOption"`
	PaymentMethod  string             `bson:"paymentMethod" json:"paymentMethod"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	Status         string             `bson:"status" json:"status"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	ContactInfo    ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	PaymentDetails *PaymentDetails    `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	StatusHistory  []StatusEntry      `bson:"statusHistory" json:"statusHistory"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
