// Package testutil provides testing utilities and helpers for the dashboard.
package testutil

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// SetupTestRedis starts an in-process Redis server and a client for it.
// Both are closed when the test ends.
func SetupTestRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// FixedTimeFunc returns a function that always returns the given time.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestTime returns a fixed morning shift timestamp for deterministic tests.
func TestTime() time.Time {
	return time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC)
}
