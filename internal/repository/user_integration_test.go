//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/punchdeck/punchdeck/internal/testutil"
)

func TestIntegrationUserRepository_CreateUser(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueCardUID("create"))

	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected database-assigned ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected database-assigned CreatedAt")
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if retrieved.CardUID != user.CardUID {
		t.Errorf("CardUID mismatch: got %q, want %q", retrieved.CardUID, user.CardUID)
	}
}

func TestIntegrationUserRepository_CreateUser_DuplicateCardUID(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	cardUID := testutil.UniqueCardUID("dup")
	first := testutil.NewTestUser(t, cardUID)
	second := testutil.NewTestUser(t, cardUID)

	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	err := repo.CreateUser(ctx, second)
	if !errors.Is(err, ErrCardUIDExists) {
		t.Errorf("expected ErrCardUIDExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_CreateUser_NonASCIICardUID(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	user := testutil.NewTestUser(t, "öö122ö8333")

	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByCardUID(ctx, "öö122ö8333")
	if err != nil {
		t.Fatalf("GetUserByCardUID failed: %v", err)
	}
	if retrieved.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, retrieved.ID)
	}
}

func TestIntegrationUserRepository_GetUserByCardUID_NotFound(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	_, err := repo.GetUserByCardUID(ctx, "no-such-card")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_ListUsers_OrderedByName(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		user := testutil.NewTestUser(t, testutil.UniqueCardUID("list"))
		user.Name = name
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"Alice", "Bob", "Charlie"} {
		if users[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, users[i].Name, want)
		}
	}
}

func TestIntegrationUserRepository_CountUsers(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty registry, got %d", count)
	}

	if err := repo.CreateUser(ctx, testutil.NewTestUser(t, testutil.UniqueCardUID("count"))); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	count, err = repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

// newAttendanceTestEnv connects to the test database, serializes against
// other DB tests, and resets the schema.
func newAttendanceTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetAttendanceSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset attendance schema: %v", err)
	}

	return ctx, repo
}
