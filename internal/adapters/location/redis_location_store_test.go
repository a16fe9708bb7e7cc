package location

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisLocationStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLocationStore(client, ttl), mr
}

func TestLocationStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, 0)
	heading := 90.0

	loc := domain.DriverLocation{
		OrgID:     "org-1",
		DriverID:  "driver-7",
		Lat:       37.77,
		Lng:       -122.42,
		Heading:   &heading,
		Timestamp: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Upsert(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := store.LastKnownPosition(context.Background(), "org-1", "driver-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected position to be found")
	}
	if got.Lat != 37.77 || got.Lng != -122.42 {
		t.Fatalf("position = %+v, want 37.77,-122.42", got)
	}
}

func TestLocationStoreMissingDriver(t *testing.T) {
	store, _ := newTestStore(t, 0)

	_, ok, err := store.LastKnownPosition(context.Background(), "org-1", "driver-unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no position for unknown driver")
	}
}

func TestLocationStoreTenantIsolation(t *testing.T) {
	store, _ := newTestStore(t, 0)

	loc := domain.DriverLocation{OrgID: "org-1", DriverID: "driver-7", Lat: 1, Lng: 2}
	if err := store.Upsert(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, ok, err := store.LastKnownPosition(context.Background(), "org-2", "driver-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("position leaked across orgs")
	}
}

func TestLocationStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t, MinTTL)

	loc := domain.DriverLocation{OrgID: "org-1", DriverID: "driver-7", Lat: 1, Lng: 2}
	if err := store.Upsert(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(MinTTL + time.Second)

	_, ok, err := store.LastKnownPosition(context.Background(), "org-1", "driver-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected record to expire")
	}
}

func TestClampTTL(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultTTL},
		{-time.Hour, DefaultTTL},
		{time.Minute, MinTTL},
		{time.Hour, time.Hour},
		{48 * time.Hour, MaxTTL},
	}

	for _, c := range cases {
		if got := ClampTTL(c.in); got != c.want {
			t.Fatalf("ClampTTL(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
