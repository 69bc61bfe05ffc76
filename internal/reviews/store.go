package reviews

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// Reviewer identifies who left the review.
type Reviewer struct {
	Name   string  `bson:"name" json:"name"`
	Email  string  `bson:"email" json:"email"`
	Avatar *string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Review is a product review document. ProductID is kept as a plain string
// so reviews survive product re-imports with new object ids.
type Review struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID       string             `bson:"productId" json:"productId"`
	Rating          int                `bson:"rating" json:"rating"`
	Comment         string             `bson:"comment" json:"comment"`
	PriceAssessment string             `bson:"priceAssessment" json:"priceAssessment"`
	User            Reviewer           `bson:"user" json:"user"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Store encapsulates operations on the reviews collection.
type Store struct {
	col     store.Collection
	nowFunc func() time.Time
}

func NewStore(col store.Collection) *Store {
	return &Store{col: col, nowFunc: time.Now}
}

// CreateInput carries the fields a client supplies for a new review.
type CreateInput struct {
	ProductID       string
	Rating          int
	Comment         string
	PriceAssessment string
	UserName        string
	UserEmail       string
	UserAvatar      *string
}

// Create inserts a review and returns the stored document.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Review, error) {
	name := in.UserName
	if name == "" {
		name = "Anonymous"
	}
	now := s.nowFunc()
	r := Review{
		ProductID:       in.ProductID,
		Rating:          in.Rating,
		Comment:         in.Comment,
		PriceAssessment: in.PriceAssessment,
		User: Reviewer{
			Name:   name,
			Email:  in.UserEmail,
			Avatar: in.UserAvatar,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.col.InsertOne(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	r.ID = id
	return &r, nil
}

// ListByProduct returns all reviews for a product, newest first.
func (s *Store) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	list := []Review{}
	opts := store.FindOptions{Sort: bson.D{{Key: "createdAt", Value: -1}}}
	if err := s.col.Find(ctx, bson.M{"productId": productID}, opts, &list); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return list, nil
}

// UpdateInput carries the replacement fields for an existing review.
type UpdateInput struct {
	Rating          int
	Comment         string
	PriceAssessment string
	ProductID       string
}

// Update replaces the mutable fields of a review and returns the updated
// document.
func (s *Store) Update(ctx context.Context, id string, in UpdateInput) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	set := bson.M{
		"rating":          in.Rating,
		"comment":         in.Comment,
		"priceAssessment": in.PriceAssessment,
		"updatedAt":       s.nowFunc(),
	}
	if in.ProductID != "" {
		set["productId"] = in.ProductID
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if res.Matched == 0 {
		return nil, store.ErrNotFound
	}
	var r Review
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}, &r); err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return &r, nil
}

// Delete removes a review.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	n, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
