package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/products"
	"github.com/damaloy/marketplace-api/internal/store"
)

// ErrAlreadyInCart is returned when the product is already in the cart.
var ErrAlreadyInCart = errors.New("product already in cart")

// Item is one cart entry. The product document is embedded as a snapshot at
// the time it was added.
type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Product   products.Product   `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

// Store encapsulates operations on the cart collection. It holds the
// products collection to verify the product exists before adding.
type Store struct {
	col      store.Collection
	products store.Collection
	nowFunc  func() time.Time
}

func NewStore(col, products store.Collection) *Store {
	return &Store{col: col, products: products, nowFunc: time.Now}
}

// Add puts a product into a user's cart. The product must exist and must not
// already be in the cart.
func (s *Store) Add(ctx context.Context, email, productID string, quantity int) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}

	var p products.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": oid}, &p); err != nil {
		return primitive.NilObjectID, err
	}

	var existing Item
	err = s.col.FindOne(ctx, bson.M{"userEmail": email, "product._id": oid}, &existing)
	if err == nil {
		return primitive.NilObjectID, ErrAlreadyInCart
	}
	if !errors.Is(err, store.ErrNotFound) {
		return primitive.NilObjectID, fmt.Errorf("check cart: %w", err)
	}

	if quantity <= 0 {
		quantity = 1
	}
	id, err := s.col.InsertOne(ctx, Item{
		UserEmail: email,
		Product:   p,
		Quantity:  quantity,
		AddedAt:   s.nowFunc(),
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert cart item: %w", err)
	}
	return id, nil
}

// List returns a user's cart, newest additions first.
func (s *Store) List(ctx context.Context, email string) ([]Item, error) {
	list := []Item{}
	opts := store.FindOptions{Sort: bson.D{{Key: "addedAt", Value: -1}}}
	if err := s.col.Find(ctx, bson.M{"userEmail": email}, opts, &list); err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}
	return list, nil
}

// UpdateQuantity sets the quantity of one cart entry and reports how many
// documents were modified.
func (s *Store) UpdateQuantity(ctx context.Context, email, productID string, quantity int) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return 0, store.ErrInvalidID
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"userEmail": email, "product._id": oid},
		bson.M{"$set": bson.M{"quantity": quantity}},
	)
	if err != nil {
		return 0, fmt.Errorf("update cart item: %w", err)
	}
	if res.Matched == 0 {
		return 0, store.ErrNotFound
	}
	return res.Modified, nil
}

// Remove deletes one cart entry.
func (s *Store) Remove(ctx context.Context, email, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return store.ErrInvalidID
	}
	n, err := s.col.DeleteOne(ctx, bson.M{"userEmail": email, "product._id": oid})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Clear removes every entry in a user's cart and reports how many were
// deleted. Returns store.ErrNotFound when the cart was already empty.
func (s *Store) Clear(ctx context.Context, email string) (int64, error) {
	n, err := s.col.DeleteMany(ctx, bson.M{"userEmail": email})
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	if n == 0 {
		return 0, store.ErrNotFound
	}
	return n, nil
}
