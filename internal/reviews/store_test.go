package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
	"github.com/damaloy/marketplace-api/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := storetest.NewDB()
	s := NewStore(db.Collection("reviews"))
	s.nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCreate(t *testing.T) {
	s := newTestStore(t)

	r, err := s.Create(context.Background(), CreateInput{
		ProductID:       "prod-1",
		Rating:          4,
		Comment:         "good quality",
		PriceAssessment: "fair",
		UserEmail:       "a@example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if r.ID.IsZero() {
		t.Fatal("expected assigned id")
	}
	if r.User.Name != "Anonymous" {
		t.Fatalf("expected anonymous fallback, got %q", r.User.Name)
	}
	if r.CreatedAt.IsZero() || !r.CreatedAt.Equal(r.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v/%v", r.CreatedAt, r.UpdatedAt)
	}
}

func TestListByProduct_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		i := i
		s.nowFunc = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		if _, err := s.Create(context.Background(), CreateInput{
			ProductID: "prod-1",
			Rating:    i + 1,
			Comment:   "c",
			UserEmail: "a@example.com",
		}); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}
	if _, err := s.Create(context.Background(), CreateInput{ProductID: "prod-2", Rating: 5, Comment: "c", UserEmail: "a@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	list, err := s.ListByProduct(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(list))
	}
	if list[0].Rating != 3 {
		t.Fatalf("expected newest review first, got rating %d", list[0].Rating)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)

	r, err := s.Create(context.Background(), CreateInput{ProductID: "prod-1", Rating: 2, Comment: "meh", PriceAssessment: "expensive", UserEmail: "a@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	s.nowFunc = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }
	updated, err := s.Update(context.Background(), r.ID.Hex(), UpdateInput{Rating: 4, Comment: "better than expected", PriceAssessment: "fair"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 4 || updated.Comment != "better than expected" {
		t.Fatalf("unexpected updated review: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatal("expected updatedAt to advance")
	}

	if _, err := s.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateInput{Rating: 1, Comment: "x", PriceAssessment: "fair"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update(context.Background(), "garbage", UpdateInput{}); !errors.Is(err, store.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	r, err := s.Create(context.Background(), CreateInput{ProductID: "prod-1", Rating: 1, Comment: "bad", UserEmail: "a@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.Delete(context.Background(), r.ID.Hex()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(context.Background(), r.ID.Hex()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
