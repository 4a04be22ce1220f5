// Package password is the hashing boundary of the identity subsystem.
// Plaintext crosses it exactly twice: once on the way into Hash and once
// into Compare.
package password

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost keeps a single bcrypt derivation in the hundreds of
// milliseconds on current hardware.
const DefaultCost = 14

// ErrEmptyPassword is returned when hashing an empty plaintext.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost      int
	dummyHash string
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// bcrypt range fall back to DefaultCost. The constructor precomputes a
// throwaway hash so that verification against unknown accounts can burn
// the same work as a real comparison.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	h := &Hasher{cost: cost}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		// only reachable with a broken cost, which the clamp above prevents
		panic(err)
	}
	h.dummyHash = string(dummy)

	return h
}

// Hash derives a salted bcrypt hash from plaintext. It fails on empty
// input and on input beyond bcrypt's 72-byte limit.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether plaintext matches the stored hash. Any failure,
// including a malformed or corrupted stored hash, is reported as a plain
// mismatch so callers cannot distinguish the cases.
func (h *Hasher) Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// CompareDummy runs a comparison against the precomputed throwaway hash.
// Login uses it on the unknown-email path so both failure paths take
// comparable time.
func (h *Hasher) CompareDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(h.dummyHash), []byte(plaintext))
}
