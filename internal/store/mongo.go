package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store bundles the collection handles for all resources. Handles are
// acquired once at startup and handed to the resource stores; Close releases
// the underlying client on shutdown.
type Store struct {
	client *mongo.Client

	Users      Collection
	Vendors    Collection
	Products   Collection
	Ads        Collection
	Orders     Collection
	Payments   Collection
	Cart       Collection
	Watchlists Collection
	Reviews    Collection
}

// Connect dials the document store and pings it before returning handles.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:     client,
		Users:      wrap(db.Collection("users")),
		Vendors:    wrap(db.Collection("vendor")),
		Products:   wrap(db.Collection("products")),
		Ads:        wrap(db.Collection("ads")),
		Orders:     wrap(db.Collection("orders")),
		Payments:   wrap(db.Collection("payment")),
		Cart:       wrap(db.Collection("cart")),
		Watchlists: wrap(db.Collection("watchlists")),
		Reviews:    wrap(db.Collection("reviews")),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func wrap(c *mongo.Collection) Collection { return &mongoCollection{c: c} }

// mongoCollection adapts *mongo.Collection to the Collection interface.
type mongoCollection struct {
	c *mongo.Collection
}

func (m *mongoCollection) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	res, err := m.c.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert one: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (m *mongoCollection) FindOne(ctx context.Context, filter bson.M, out interface{}) error {
	err := m.c.FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find one: %w", err)
	}
	return nil
}

func (m *mongoCollection) Find(ctx context.Context, filter bson.M, opts FindOptions, out interface{}) error {
	fo := options.Find()
	if opts.Sort != nil {
		fo.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	cur, err := m.c.Find(ctx, filter, fo)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode cursor: %w", err)
	}
	return nil
}

func (m *mongoCollection) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	n, err := m.c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (m *mongoCollection) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (UpdateResult, error) {
	res, err := m.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update one: %w", err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (m *mongoCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := m.c.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete one: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *mongoCollection) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := m.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete many: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *mongoCollection) Aggregate(ctx context.Context, pipeline []bson.M, out interface{}) error {
	cur, err := m.c.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode cursor: %w", err)
	}
	return nil
}
