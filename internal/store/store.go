package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("document not found")

// ErrInvalidID is returned when a path identifier is not a valid 24-character
// hex storage id where one is required.
var ErrInvalidID = errors.New("invalid identifier")

// FindOptions carries the cursor modifiers the stores actually use.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// UpdateResult reports how a write matched.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Collection is the subset of document-store operations the resource stores
// depend on. Keeping it narrow lets tests substitute an in-memory fake that
// interprets the same filter/update documents the real driver receives.
type Collection interface {
	InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error)
	FindOne(ctx context.Context, filter bson.M, out interface{}) error
	Find(ctx context.Context, filter bson.M, opts FindOptions, out interface{}) error
	CountDocuments(ctx context.Context, filter bson.M) (int64, error)
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, pipeline []bson.M, out interface{}) error
}
