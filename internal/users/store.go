package users

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

// ErrRoleChangeNotAllowed is returned when a role update is not the single
// permitted user -> vendor transition.
var ErrRoleChangeNotAllowed = errors.New("role can only change from user to vendor")

// ErrNoChange is returned when a role update matched but modified nothing.
var ErrNoChange = errors.New("no changes made")

// Store encapsulates operations on the users collection.
type Store struct {
	col     store.Collection
	nowFunc func() time.Time
}

func NewStore(col store.Collection) *Store {
	return &Store{col: col, nowFunc: time.Now}
}

// Create inserts a new account unless the email is already registered.
// Returns inserted=false with no error when the user already exists.
func (s *Store) Create(ctx context.Context, email string, displayName, photoURL *string) (inserted bool, id primitive.ObjectID, err error) {
	var existing User
	err = s.col.FindOne(ctx, bson.M{"email": email}, &existing)
	if err == nil {
		return false, primitive.NilObjectID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, primitive.NilObjectID, fmt.Errorf("check user: %w", err)
	}

	now := s.nowFunc().UTC().Format(time.RFC3339)
	u := User{
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        RoleUser,
		CreatedAt:   now,
		LastLogIn:   now,
	}
	id, err = s.col.InsertOne(ctx, u)
	if err != nil {
		return false, primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return true, id, nil
}

// Page is one page of users with pagination metadata.
type Page struct {
	Users      []User
	Total      int64
	Page       int64
	TotalPages int64
}

// List pages through users, optionally narrowed by a case-insensitive search
// over display name and email.
func (s *Store) List(ctx context.Context, page, limit int64, search string) (*Page, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 5
	}

	filter := bson.M{}
	if search != "" {
		filter["$or"] = []bson.M{
			{"displayName": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	list := []User{}
	opts := store.FindOptions{Skip: (page - 1) * limit, Limit: limit}
	if err := s.col.Find(ctx, filter, opts, &list); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	return &Page{
		Users:      list,
		Total:      total,
		Page:       page,
		TotalPages: int64(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// PromoteToVendor changes a user's role from user to vendor; any other
// transition is rejected. Returns the previous role on success.
func (s *Store) PromoteToVendor(ctx context.Context, id string, newRole string) (previousRole string, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", store.ErrInvalidID
	}

	var u User
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}, &u); err != nil {
		return "", err
	}
	if u.Role != RoleUser || newRole != RoleVendor {
		return "", ErrRoleChangeNotAllowed
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": RoleVendor}})
	if err != nil {
		return "", fmt.Errorf("update role: %w", err)
	}
	if res.Modified == 0 {
		return "", ErrNoChange
	}
	return u.Role, nil
}

// RoleByEmail returns the account role, defaulting to user when the stored
// document has none.
func (s *Store) RoleByEmail(ctx context.Context, email string) (string, error) {
	var u User
	if err := s.col.FindOne(ctx, bson.M{"email": email}, &u); err != nil {
		return "", err
	}
	if u.Role == "" {
		return RoleUser, nil
	}
	return u.Role, nil
}

// SetRoleByEmail overwrites the role of the account with the given email.
// Missing accounts are ignored (best-effort, mirrors vendor registration).
func (s *Store) SetRoleByEmail(ctx context.Context, email, role string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// GetByEmail fetches an account by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := s.col.FindOne(ctx, bson.M{"email": email}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
