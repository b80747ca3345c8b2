package testfixtures

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock is a manually driven time source. Session expiry and cache TTL tests
// move it forward instead of sleeping.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at start, or at ReferenceTime when start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{now: start}
}

// Now reports the clock time. A nil clock falls back to the wall clock.
func (c *Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Sequence hands out deterministic user ids and session tokens.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      uint64
}

// NewSequence returns a sequence whose ids read "<prefix>-1", "<prefix>-2" and
// so on. An empty prefix yields UUIDs derived from the counter instead, the
// same shape the server assigns to users.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

// ID returns the next identifier.
func (s *Sequence) ID() string {
	n := s.next()
	if s.prefix == "" {
		return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "nayidisha-%d", n)).String()
	}
	return fmt.Sprintf("%s-%d", s.prefix, n)
}

// Token returns the next session token: 64 hex characters, like the tokens
// issued at signin.
func (s *Sequence) Token() string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s-token-%d", s.prefix, s.next()))
	return hex.EncodeToString(sum[:])
}
