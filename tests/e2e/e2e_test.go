//go:build e2e

// Package e2e exercises the full attendance flow against a running server
// backed by real Postgres and Redis instances.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/punchdeck/punchdeck/internal/repository"
	"github.com/punchdeck/punchdeck/internal/testutil"
)

type userResponse struct {
	ID      int64  `json:"id"`
	CardUID string `json:"card_uid"`
	Name    string `json:"name"`
}

type scanResponse struct {
	ReceiptID string       `json:"receipt_id"`
	User      userResponse `json:"user"`
	Event     struct {
		ID        int64  `json:"id"`
		EventType string `json:"event_type"`
	} `json:"event"`
}

type userListResponse struct {
	Data  []userResponse `json:"data"`
	Count int            `json:"count"`
}

type statsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalEvents    int64 `json:"total_events"`
	ClockedInCount int64 `json:"clocked_in_count"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestE2EAttendanceSmoke(t *testing.T) {
	baseURL := envOrDefault("PUNCHDECK_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	resetState(t, dbURL)

	client := &http.Client{Timeout: 10 * time.Second}
	cardUID := testutil.UniqueCardUID("e2e")

	// Register a user.
	user := postJSON[userResponse](t, client, baseURL+"/api/v1/users", map[string]string{
		"card_uid": cardUID,
		"name":     "E2E Tester",
	}, http.StatusCreated)
	if user.ID == 0 {
		t.Fatalf("expected assigned user id, got %+v", user)
	}

	// Badge lookup resolves the card.
	lookedUp := getJSON[userResponse](t, client, baseURL+"/api/v1/users/card/"+cardUID, http.StatusOK)
	if lookedUp.ID != user.ID {
		t.Fatalf("card lookup returned user %d, want %d", lookedUp.ID, user.ID)
	}

	// First tap clocks in.
	scan := postJSON[scanResponse](t, client, baseURL+"/api/v1/scans", map[string]string{
		"card_uid": cardUID,
	}, http.StatusCreated)
	if scan.Event.EventType != "in" {
		t.Fatalf("first scan should clock in, got %q", scan.Event.EventType)
	}
	if scan.ReceiptID == "" {
		t.Fatal("expected scan receipt id")
	}

	// An immediate duplicate tap is debounced.
	dup := postJSON[errorResponse](t, client, baseURL+"/api/v1/scans", map[string]string{
		"card_uid": cardUID,
	}, http.StatusConflict)
	if dup.Code != "SCAN_DEBOUNCED" {
		t.Fatalf("expected SCAN_DEBOUNCED, got %q", dup.Code)
	}

	// The user shows up in the presence view.
	presence := getJSON[userListResponse](t, client, baseURL+"/api/v1/presence", http.StatusOK)
	if !containsUser(presence.Data, user.ID) {
		t.Fatalf("expected user %d in presence view, got %+v", user.ID, presence.Data)
	}

	// Wait out the debounce window, then tap again to clock out.
	time.Sleep(debounceWindow() + 500*time.Millisecond)
	scan = postJSON[scanResponse](t, client, baseURL+"/api/v1/scans", map[string]string{
		"card_uid": cardUID,
	}, http.StatusCreated)
	if scan.Event.EventType != "out" {
		t.Fatalf("second scan should clock out, got %q", scan.Event.EventType)
	}

	presence = getJSON[userListResponse](t, client, baseURL+"/api/v1/presence", http.StatusOK)
	if containsUser(presence.Data, user.ID) {
		t.Fatalf("user %d should have left the presence view", user.ID)
	}

	// Stats reflect the session.
	stats := getJSON[statsResponse](t, client, baseURL+"/api/v1/stats", http.StatusOK)
	if stats.TotalUsers != 1 || stats.TotalEvents != 2 || stats.ClockedInCount != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// Unknown card is rejected.
	unknown := postJSON[errorResponse](t, client, baseURL+"/api/v1/scans", map[string]string{
		"card_uid": "no-such-card",
	}, http.StatusNotFound)
	if unknown.Code != "UNKNOWN_CARD" {
		t.Fatalf("expected UNKNOWN_CARD, got %q", unknown.Code)
	}
}

// resetState wipes the attendance schema and any Redis debounce keys so the
// smoke test starts from a clean slate.
func resetState(t *testing.T, dbURL string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer repo.Close()

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	defer unlock()

	if err := testutil.ResetAttendanceSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			t.Fatalf("parse redis url: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := testutil.FlushRedis(ctx, rdb); err != nil {
			t.Fatalf("flush redis: %v", err)
		}
	}
}

func debounceWindow() time.Duration {
	if raw := os.Getenv("SCAN_DEBOUNCE_WINDOW"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return 3 * time.Second
}

func containsUser(users []userResponse, id int64) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func postJSON[T any](t *testing.T, client *http.Client, url string, body any, wantStatus int) T {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	return decodeResponse[T](t, url, resp, wantStatus)
}

func getJSON[T any](t *testing.T, client *http.Client, url string, wantStatus int) T {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	return decodeResponse[T](t, url, resp, wantStatus)
}

func decodeResponse[T any](t *testing.T, url string, resp *http.Response, wantStatus int) T {
	t.Helper()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("%s: decode response: %v", url, err)
	}
	return v
}
