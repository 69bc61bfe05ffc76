package products

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceHistoryLimit caps how many past price changes a product keeps.
const PriceHistoryLimit = 30

// PriceEntry is one historical price point. Dates are ISO-8601 strings.
type PriceEntry struct {
	Price     float64 `bson:"price" json:"price"`
	Date      string  `bson:"date" json:"date"`
	UpdatedBy string  `bson:"updatedBy" json:"updatedBy"`
}

// Product is the catalog document.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ItemName    string             `bson:"itemName" json:"itemName"`
	MarketName  string             `bson:"marketName" json:"marketName"`
	Price       float64            `bson:"price" json:"price"`
	Date        time.Time          `bson:"date" json:"date"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Photo       string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	VendorID    primitive.ObjectID `bson:"vendorId,omitempty" json:"vendorId,omitempty"`
	VendorName  string             `bson:"vendorName,omitempty" json:"vendorName,omitempty"`
	Prices      []PriceEntry       `bson:"prices" json:"prices"`
	CreatedAt   string             `bson:"created_at" json:"created_at"`
	UpdatedAt   string             `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedBy   string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// History is the price-history view of a product.
type History struct {
	ItemName     string       `json:"itemName"`
	MarketName   string       `json:"marketName"`
	CurrentPrice float64      `json:"currentPrice"`
	PriceHistory []PriceEntry `json:"priceHistory"`
}
