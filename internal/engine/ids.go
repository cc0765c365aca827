package engine

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator issues item identifiers. IDs only need to be unique within
// a session.
type IDGenerator interface {
	NewID(at time.Time) string
}

// ULIDGenerator issues timestamp-ordered ULIDs. IDs created in the same
// millisecond stay ordered because the entropy source is monotonic.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewULIDGenerator returns a generator backed by crypto/rand.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewULIDGeneratorWithEntropy uses the supplied entropy, for reproducible tests.
func NewULIDGeneratorWithEntropy(r io.Reader) *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(r, 0)}
}

// NewID returns a ULID stamped with at.
func (g *ULIDGenerator) NewID(at time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), g.entropy).String()
}
