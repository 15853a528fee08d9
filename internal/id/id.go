package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// HeaderPrefix starts every generated journal header ID.
	HeaderPrefix = "h_"
	// LinePrefix starts every generated journal line ID.
	LinePrefix = "l_"
)

// Generator hands out time-ordered, prefixed ULIDs. It is safe for
// concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator returns a Generator backed by crypto/rand with monotonic
// entropy, so IDs minted in the same millisecond still sort in order.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// newGeneratorAt is used by tests to pin the clock and entropy source.
func newGeneratorAt(now func() time.Time, entropy io.Reader) *Generator {
	return &Generator{entropy: entropy, now: now}
}

// Header returns a new journal header ID like "h_01HQ...".
func (g *Generator) Header() string {
	return HeaderPrefix + g.next()
}

// Line returns a new journal line ID like "l_01HQ...".
func (g *Generator) Line() string {
	return LinePrefix + g.next()
}

func (g *Generator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
