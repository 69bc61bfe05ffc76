package users

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
	s := NewStore(db.Collection("users"))
	s.nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func strPtr(s string) *string { return &s }

func TestCreate_NewAndExisting(t *testing.T) {
	s := newTestStore(t)

	inserted, id, err := s.Create(context.Background(), "a@example.com", strPtr("Alice"), nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !inserted || id.IsZero() {
		t.Fatalf("expected insert with id, got inserted=%v id=%s", inserted, id.Hex())
	}

	u, err := s.GetByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected default role user, got %s", u.Role)
	}
	if u.CreatedAt == "" || u.LastLogIn == "" {
		t.Fatal("expected timestamps set")
	}

	inserted, _, err = s.Create(context.Background(), "a@example.com", nil, nil)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if inserted {
		t.Fatal("expected inserted=false for existing email")
	}
}

func TestList_SearchAndPaging(t *testing.T) {
	s := newTestStore(t)

	for _, u := range []struct{ email, name string }{
		{"alice@example.com", "Alice"},
		{"bob@example.com", "Bob"},
		{"carol@other.org", "Carol"},
	} {
		if _, _, err := s.Create(context.Background(), u.email, strPtr(u.name), nil); err != nil {
			t.Fatalf("seed %s failed: %v", u.email, err)
		}
	}

	page, err := s.List(context.Background(), 1, 5, "EXAMPLE")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 matches for case-insensitive search, got %d", page.Total)
	}

	paged, err := s.List(context.Background(), 2, 2, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(paged.Users) != 1 || paged.TotalPages != 2 {
		t.Fatalf("expected 1 user on page 2 of 2, got %d users, %d pages", len(paged.Users), paged.TotalPages)
	}
}

func TestPromoteToVendor(t *testing.T) {
	s := newTestStore(t)

	_, id, err := s.Create(context.Background(), "a@example.com", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	prev, err := s.PromoteToVendor(context.Background(), id.Hex(), RoleVendor)
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if prev != RoleUser {
		t.Fatalf("expected previous role user, got %s", prev)
	}

	role, err := s.RoleByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}
	if role != RoleVendor {
		t.Fatalf("expected vendor, got %s", role)
	}

	// vendor -> vendor is no longer a user -> vendor transition
	if _, err := s.PromoteToVendor(context.Background(), id.Hex(), RoleVendor); !errors.Is(err, ErrRoleChangeNotAllowed) {
		t.Fatalf("expected ErrRoleChangeNotAllowed, got %v", err)
	}
}

func TestPromoteToVendor_Invalid(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.PromoteToVendor(context.Background(), "nope", RoleVendor); !errors.Is(err, store.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := s.PromoteToVendor(context.Background(), primitive.NewObjectID().Hex(), RoleVendor); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, id, err := s.Create(context.Background(), "a@example.com", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.PromoteToVendor(context.Background(), id.Hex(), RoleAdmin); !errors.Is(err, ErrRoleChangeNotAllowed) {
		t.Fatalf("expected ErrRoleChangeNotAllowed for user -> Admin, got %v", err)
	}
}

func TestSetRoleByEmail_MissingAccountIgnored(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetRoleByEmail(context.Background(), "ghost@example.com", RoleVendor); err != nil {
		t.Fatalf("expected best-effort success, got %v", err)
	}
}
