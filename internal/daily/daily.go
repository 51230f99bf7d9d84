// internal/daily/daily.go
//
// Shared "daily" targets.
//
// Every player on the same UTC day gets the same hidden number:
// HMAC-SHA256(salt, YYYY-MM-DD) picks the value, so the salt keeps the
// sequence unpredictable without storing anything. Source plugs this into
// game.WithRand.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic value in [0, n) for a date using HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Source is a game.Rand that yields the same target for everyone on a given UTC day.
type Source struct {
	date time.Time
	salt string
}

func NewSource(date time.Time, salt string) *Source {
	return &Source{date: date, salt: salt}
}

// IntN panics if n <= 0, like math/rand/v2.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		panic("daily: invalid argument to IntN")
	}
	return Index(s.date, s.salt, n)
}

// Key is the day this source draws for.
func (s *Source) Key() string { return DateKey(s.date) }
