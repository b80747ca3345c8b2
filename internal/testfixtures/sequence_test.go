package testfixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestClock(t *testing.T) {
	t.Parallel()

	t.Run("defaults to reference time", func(t *testing.T) {
		t.Parallel()
		if got := NewClock(time.Time{}).Now(); !got.Equal(ReferenceTime()) {
			t.Fatalf("expected ReferenceTime, got %v", got)
		}
	})

	t.Run("advance past a session ttl", func(t *testing.T) {
		t.Parallel()
		start := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
		clock := NewClock(start)
		now := clock.Now

		if got := clock.Advance(24 * time.Hour); !got.Equal(start.Add(24 * time.Hour)) {
			t.Fatalf("advance returned %v", got)
		}
		if got := now(); !got.Equal(start.Add(24 * time.Hour)) {
			t.Fatalf("method value should observe the advanced time, got %v", got)
		}
	})

	t.Run("nil clock uses wall time", func(t *testing.T) {
		t.Parallel()
		var clock *Clock
		if clock.Now().IsZero() {
			t.Fatalf("expected wall clock time")
		}
	})
}

func TestSequence(t *testing.T) {
	t.Parallel()

	t.Run("prefixed ids", func(t *testing.T) {
		t.Parallel()
		seq := NewSequence("user")
		if first, second := seq.ID(), seq.ID(); first != "user-1" || second != "user-2" {
			t.Fatalf("unexpected identifiers: %q, %q", first, second)
		}
	})

	t.Run("uuid ids are stable", func(t *testing.T) {
		t.Parallel()
		a, b := NewSequence(""), NewSequence("")
		id := a.ID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected a UUID, got %q: %v", id, err)
		}
		if other := b.ID(); other != id {
			t.Fatalf("expected the same first id from both sequences, got %q and %q", id, other)
		}
		if a.ID() == id {
			t.Fatalf("expected the second id to differ")
		}
	})

	t.Run("tokens look like issued tokens", func(t *testing.T) {
		t.Parallel()
		seq := NewSequence("session")
		first, second := seq.Token(), seq.Token()
		if len(first) != 64 {
			t.Fatalf("expected 64 hex characters, got %d", len(first))
		}
		if first == second {
			t.Fatalf("expected distinct tokens")
		}
	})
}
