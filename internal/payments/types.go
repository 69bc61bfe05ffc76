package payments

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the document stored in the payment collection. Payments are
// written once and never mutated; there is no dedup on transaction or intent
// ids, so repeated recordings produce separate documents.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	Email           string             `bson:"email" json:"email"`
	Amount          float64            `bson:"amount" json:"amount"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID   string             `bson:"transactionId" json:"transactionId"`
	PaymentIntentID string             `bson:"paymentIntentId" json:"paymentIntentId"`
	Status          string             `bson:"status" json:"status"`
	PaymentDate     time.Time          `bson:"paymentDate" json:"paymentDate"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
