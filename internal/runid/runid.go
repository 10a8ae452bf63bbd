// Package runid generates a single lexicographically sortable identifier for
// one cache process invocation, attached to every log line and exposed as a
// constant metrics label so a scrape or a log aggregator can correlate them
// to the same run.
package runid

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix distinguishes a run identifier from any other ULID a reader might
// encounter in logs.
const Prefix = "run"

// Generator produces run identifiers from a shared entropy source.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by a cryptographically secure
// entropy source.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate mints a new run identifier, formatted "run_<ULID>".
func (g *Generator) Generate() string {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return Prefix + "_" + id.String()
}

// New mints a run identifier using the default generator.
func New() string {
	return Default().Generate()
}
