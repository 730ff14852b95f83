//go:build integration

package repository

import (
	"testing"

	"github.com/punchdeck/punchdeck/internal/testutil"
)

func TestIntegrationMigrations_EventTypeCheckConstraint(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueCardUID("check"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// The service validates event types before insert; the check constraint
	// is the backstop against writes that bypass it.
	_, err := repo.Pool().Exec(ctx,
		`INSERT INTO clock_events (user_id, event_type) VALUES ($1, 'lunch')`,
		user.ID,
	)
	if err == nil {
		t.Fatal("expected check constraint violation for event_type 'lunch'")
	}
}

func TestIntegrationMigrations_SchemaResetIsRepeatable(t *testing.T) {
	ctx, repo := newAttendanceTestEnv(t)

	for i := 0; i < 2; i++ {
		if err := testutil.ResetAttendanceSchema(ctx, repo.Pool()); err != nil {
			t.Fatalf("reset %d failed: %v", i, err)
		}
	}
}
