package ads

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// DefaultPageSize applies when an ads listing carries no limit.
const DefaultPageSize = 10

// Ad is an advertisement document. VendorID and CreatedAt are write-once;
// the update path never touches them.
type Ad struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetAudience string             `bson:"targetAudience,omitempty" json:"targetAudience,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	Photo          string             `bson:"photo,omitempty" json:"photo,omitempty"`
	VendorID       string             `bson:"vendorId,omitempty" json:"vendorId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Store encapsulates operations on the ads collection.
type Store struct {
	col     store.Collection
	nowFunc func() time.Time
}

func NewStore(col store.Collection) *Store {
	return &Store{col: col, nowFunc: time.Now}
}

func (s *Store) Create(ctx context.Context, ad Ad) (primitive.ObjectID, error) {
	now := s.nowFunc()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	id, err := s.col.InsertOne(ctx, ad)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert ad: %w", err)
	}
	return id, nil
}

// ListFilter narrows and pages an ads listing.
type ListFilter struct {
	Status string
	Search string
	Page   int64
	Limit  int64
}

// Page is one page of ads with pagination metadata.
type Page struct {
	Ads        []Ad
	Total      int64
	Page       int64
	Limit      int64
	TotalPages int64
}

func (s *Store) List(ctx context.Context, f ListFilter) (*Page, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": f.Search, "$options": "i"}},
			{"description": bson.M{"$regex": f.Search, "$options": "i"}},
			{"targetAudience": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}

	list := []Ad{}
	opts := store.FindOptions{Skip: (f.Page - 1) * f.Limit, Limit: f.Limit}
	if err := s.col.Find(ctx, filter, opts, &list); err != nil {
		return nil, fmt.Errorf("find ads: %w", err)
	}
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count ads: %w", err)
	}

	return &Page{
		Ads:        list,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	var ad Ad
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// UpdateInput carries a partial ad update; nil fields are untouched.
// Identity fields (_id, createdAt, vendorId) are not updatable by design of
// the schema.
type UpdateInput struct {
	Title          *string
	Description    *string
	TargetAudience *string
	Status         *string
	Photo          *string
}

func (s *Store) Update(ctx context.Context, id string, in UpdateInput) (*Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	set := bson.M{"updatedAt": s.nowFunc()}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.TargetAudience != nil {
		set["targetAudience"] = *in.TargetAudience
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Photo != nil {
		set["photo"] = *in.Photo
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update ad: %w", err)
	}
	if res.Matched == 0 {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	n, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
