package watchlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// ErrAlreadyWatched is returned when the product is already on the list.
var ErrAlreadyWatched = errors.New("product already in watchlist")

// Item is one watchlist entry: a reference to a product, not a snapshot.
type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

// ProductSummary is the trimmed product view joined into a listing.
type ProductSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	ItemName    string             `bson:"itemName" json:"itemName"`
	Price       float64            `bson:"price" json:"price"`
	Photo       string             `bson:"photo" json:"photo"`
	MarketName  string             `bson:"marketName" json:"marketName"`
	VendorName  string             `bson:"vendorName" json:"vendorName"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	Date        time.Time          `bson:"date" json:"date"`
	CreatedAt   string             `bson:"created_at" json:"created_at"`
}

// Entry is a watchlist item with its product joined in.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
	Product   ProductSummary     `bson:"product" json:"product"`
}

// Store encapsulates operations on the watchlists collection.
type Store struct {
	col      store.Collection
	products store.Collection
	nowFunc  func() time.Time
}

func NewStore(col, products store.Collection) *Store {
	return &Store{col: col, products: products, nowFunc: time.Now}
}

// Add puts a product on a user's watchlist. The product must exist and must
// not already be watched.
func (s *Store) Add(ctx context.Context, email, productID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}

	var p bson.M
	if err := s.products.FindOne(ctx, bson.M{"_id": oid}, &p); err != nil {
		return primitive.NilObjectID, err
	}

	var existing Item
	err = s.col.FindOne(ctx, bson.M{"userEmail": email, "productId": oid}, &existing)
	if err == nil {
		return primitive.NilObjectID, ErrAlreadyWatched
	}
	if !errors.Is(err, store.ErrNotFound) {
		return primitive.NilObjectID, fmt.Errorf("check watchlist: %w", err)
	}

	id, err := s.col.InsertOne(ctx, Item{UserEmail: email, ProductID: oid, AddedAt: s.nowFunc()})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert watchlist item: %w", err)
	}
	return id, nil
}

// List joins each watchlist entry with its product through an aggregation
// pipeline and returns entries newest-first. Entries whose product no longer
// exists are dropped by the unwind.
func (s *Store) List(ctx context.Context, email string) ([]Entry, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"userEmail": email}},
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "productId",
			"foreignField": "_id",
			"as":           "product",
		}},
		{"$unwind": "$product"},
		{"$project": bson.M{
			"_id":       1,
			"userEmail": 1,
			"productId": 1,
			"addedAt":   1,
			"product": bson.M{
				"_id":         "$product._id",
				"itemName":    "$product.itemName",
				"price":       "$product.price",
				"photo":       "$product.photo",
				"marketName":  "$product.marketName",
				"vendorName":  "$product.vendorName",
				"description": "$product.description",
				"status":      "$product.status",
				"date":        "$product.date",
				"created_at":  "$product.created_at",
			},
		}},
		{"$sort": bson.M{"addedAt": -1}},
	}
	list := []Entry{}
	if err := s.col.Aggregate(ctx, pipeline, &list); err != nil {
		return nil, fmt.Errorf("aggregate watchlist: %w", err)
	}
	return list, nil
}

// Remove deletes one watchlist entry.
func (s *Store) Remove(ctx context.Context, email, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return store.ErrInvalidID
	}
	n, err := s.col.DeleteOne(ctx, bson.M{"userEmail": email, "productId": oid})
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Check reports whether a product is on the list and when it was added.
func (s *Store) Check(ctx context.Context, email, productID string) (bool, *time.Time, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return false, nil, store.ErrInvalidID
	}
	var item Item
	err = s.col.FindOne(ctx, bson.M{"userEmail": email, "productId": oid}, &item)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("check watchlist: %w", err)
	}
	return true, &item.AddedAt, nil
}

// Count returns the size of a user's watchlist.
func (s *Store) Count(ctx context.Context, email string) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"userEmail": email})
	if err != nil {
		return 0, fmt.Errorf("count watchlist: %w", err)
	}
	return n, nil
}
