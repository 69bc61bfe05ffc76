package vendors

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// Vendor is a seller profile.
type Vendor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	ShopName   string             `bson:"shopName" json:"shopName"`
	MarketName string             `bson:"marketName,omitempty" json:"marketName,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address    string             `bson:"address,omitempty" json:"address,omitempty"`
	Photo      string             `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Store encapsulates operations on the vendor collection.
type Store struct {
	col     store.Collection
	nowFunc func() time.Time
}

func NewStore(col store.Collection) *Store {
	return &Store{col: col, nowFunc: time.Now}
}

func (s *Store) Create(ctx context.Context, v Vendor) (primitive.ObjectID, error) {
	v.CreatedAt = s.nowFunc()
	id, err := s.col.InsertOne(ctx, v)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert vendor: %w", err)
	}
	return id, nil
}

func (s *Store) List(ctx context.Context) ([]Vendor, error) {
	list := []Vendor{}
	if err := s.col.Find(ctx, bson.M{}, store.FindOptions{}, &list); err != nil {
		return nil, fmt.Errorf("find vendors: %w", err)
	}
	return list, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Vendor, error) {
	var v Vendor
	if err := s.col.FindOne(ctx, bson.M{"email": email}, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
