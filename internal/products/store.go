package products

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// MaxPageSize caps product listings.
const MaxPageSize = 100

// ErrVendorRequired is returned when a creation payload names no vendor.
var ErrVendorRequired = errors.New("vendor information is required")

// ErrVendorNotFound is returned when the named vendor does not exist.
var ErrVendorNotFound = errors.New("vendor not found")

// Store encapsulates operations on the products collection. It holds the
// vendor collection too, to verify ownership at creation.
type Store struct {
	col     store.Collection
	vendors store.Collection
	nowFunc func() time.Time
}

func NewStore(col, vendors store.Collection) *Store {
	return &Store{col: col, vendors: vendors, nowFunc: time.Now}
}

// CreateInput carries a validated product-creation payload. Exactly one of
// VendorID and VendorEmail must identify an existing vendor.
type CreateInput struct {
	Product     Product
	VendorID    string
	VendorEmail string
}

// Create verifies the owning vendor, seeds the price history with the
// initial price, and inserts the document.
func (s *Store) Create(ctx context.Context, in CreateInput) (primitive.ObjectID, error) {
	p := in.Product

	switch {
	case in.VendorID != "":
		oid, err := primitive.ObjectIDFromHex(in.VendorID)
		if err != nil {
			return primitive.NilObjectID, store.ErrInvalidID
		}
		var v bson.M
		if err := s.vendors.FindOne(ctx, bson.M{"_id": oid}, &v); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return primitive.NilObjectID, ErrVendorNotFound
			}
			return primitive.NilObjectID, fmt.Errorf("check vendor: %w", err)
		}
		p.VendorID = oid
	case in.VendorEmail != "":
		var v struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := s.vendors.FindOne(ctx, bson.M{"email": in.VendorEmail}, &v); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return primitive.NilObjectID, ErrVendorNotFound
			}
			return primitive.NilObjectID, fmt.Errorf("check vendor: %w", err)
		}
		p.VendorID = v.ID
	default:
		return primitive.NilObjectID, ErrVendorRequired
	}

	now := s.nowFunc().UTC().Format(time.RFC3339)
	p.Prices = []PriceEntry{{Price: p.Price, Date: now, UpdatedBy: p.VendorID.Hex()}}
	p.CreatedAt = now

	id, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// ListFilter narrows and pages a product listing.
type ListFilter struct {
	Status string
	Search string
	SortBy string
	Date   *time.Time // exact-day filter
	Page   int64
	Limit  int64
}

// Page is one page of products with pagination metadata.
type Page struct {
	Products   []Product
	Total      int64
	Page       int64
	Limit      int64
	TotalPages int64
}

func sortFor(sortBy string) bson.D {
	switch sortBy {
	case "price_low_high":
		return bson.D{{Key: "price", Value: 1}}
	case "price_high_low":
		return bson.D{{Key: "price", Value: -1}}
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	default: // newest
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// List pages through products with search, status, exact-day date filtering
// and price/recency sorting.
func (s *Store) List(ctx context.Context, f ListFilter) (*Page, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"itemName": bson.M{"$regex": f.Search, "$options": "i"}},
			{"marketName": bson.M{"$regex": f.Search, "$options": "i"}},
			{"category": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Date != nil {
		start := f.Date.UTC().Truncate(24 * time.Hour)
		filter["date"] = bson.M{"$gte": start, "$lt": start.Add(24 * time.Hour)}
	}

	opts := store.FindOptions{
		Sort:  sortFor(f.SortBy),
		Skip:  (f.Page - 1) * f.Limit,
		Limit: f.Limit,
	}
	list := []Product{}
	if err := s.col.Find(ctx, filter, opts, &list); err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	return &Page{
		Products:   list,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// Get fetches a product by storage id.
func (s *Store) Get(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	var p Product
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateInput carries a partial product update; nil fields are untouched.
type UpdateInput struct {
	ItemName    *string
	MarketName  *string
	Price       *float64
	Category    *string
	Photo       *string
	Description *string
	Status      *string
	UpdatedBy   string
}

// Update applies a partial update. A price change pushes the previous price
// onto the history, which keeps only the most recent entries.
func (s *Store) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedBy := in.UpdatedBy
	if updatedBy == "" {
		updatedBy = "system"
	}

	set := bson.M{
		"updated_at": s.nowFunc().UTC().Format(time.RFC3339),
		"updatedBy":  updatedBy,
	}
	if in.ItemName != nil {
		set["itemName"] = *in.ItemName
	}
	if in.MarketName != nil {
		set["marketName"] = *in.MarketName
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Photo != nil {
		set["photo"] = *in.Photo
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Price != nil && *in.Price != cur.Price {
		prevDate := cur.UpdatedAt
		if prevDate == "" {
			prevDate = cur.CreatedAt
		}
		prevBy := cur.UpdatedBy
		if prevBy == "" {
			prevBy = "system"
		}
		prices := append(cur.Prices, PriceEntry{Price: cur.Price, Date: prevDate, UpdatedBy: prevBy})
		if len(prices) > PriceHistoryLimit {
			prices = prices[len(prices)-PriceHistoryLimit:]
		}
		set["price"] = *in.Price
		set["prices"] = prices
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.Matched == 0 {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a product. Returns store.ErrNotFound when nothing matched.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	n, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// PriceHistory returns the price-history view of a product.
func (s *Store) PriceHistory(ctx context.Context, id string) (*History, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	hist := p.Prices
	if hist == nil {
		hist = []PriceEntry{}
	}
	return &History{
		ItemName:     p.ItemName,
		MarketName:   p.MarketName,
		CurrentPrice: p.Price,
		PriceHistory: hist,
	}, nil
}
