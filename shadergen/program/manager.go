// Package program owns the lifetime of generated GPU programs: serialization
// through the writer registry, content fingerprinting, deduplication across
// techniques, compilation through the host, and the optional on-disk source
// cache. Two techniques whose generated programs are byte-identical share one
// compiled pair.
package program

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/writer"
)

// ErrCompileFailed wraps a host compiler error. The failure is memoized per
// fingerprint so the same broken program is not recompiled every frame; the
// memo clears on Flush.
var ErrCompileFailed = errors.New("program: compilation failed")

// Programs is one deduplicated vertex/pixel pair: the generated sources, the
// compiled host programs, and the content fingerprint they share. Instances
// are owned by the Manager and shared across every acquirer with the same
// fingerprint.
type Programs struct {
	// Hash is the content fingerprint: language, both sources, both layouts.
	Hash uint64

	// Language is the target language tag the pair was written for.
	Language string

	// VertexSource and PixelSource are the generated source texts. Empty for
	// the null language.
	VertexSource string
	PixelSource  string

	// Vertex and Pixel are the compiled host programs. Nil when the source
	// for the stage is empty.
	Vertex host.GpuProgram
	Pixel  host.GpuProgram
}

// manager is the implementation of the Manager interface.
type manager struct {
	mu       sync.Mutex
	writers  *writer.Registry
	compiler host.ProgramCompiler
	cache    SourceCache

	entries  map[uint64]*entry
	failures map[uint64]error
}

type entry struct {
	programs *Programs
	refs     int
}

// Manager deduplicates and compiles generated program pairs. Acquire and
// Release are reference counted: an entry lives while at least one technique
// holds it, and Flush drops everything regardless of reference counts.
type Manager interface {
	// Acquire serializes the program set for a language, fingerprints the
	// result, and returns the shared compiled pair, compiling on first sight.
	// A memoized compile failure returns the same error without recompiling.
	//
	// Parameters:
	//   - set: the linked program set to serialize
	//   - language: the target language tag
	//   - vertexProfile: the host profile string for the vertex stage
	//   - pixelProfile: the host profile string for the pixel stage
	//
	// Returns:
	//   - *Programs: the shared pair
	//   - error: a writer error, or ErrCompileFailed wrapping the host error
	Acquire(set *ir.ProgramSet, language, vertexProfile, pixelProfile string) (*Programs, error)

	// Release drops one reference to a fingerprint. The entry is evicted when
	// the last reference goes.
	//
	// Parameters:
	//   - hash: the fingerprint returned in Programs.Hash
	Release(hash uint64)

	// Flush evicts every entry and clears the compile-failure memo. The disk
	// source cache, when configured, is cleared too.
	Flush()

	// Count retrieves the number of live deduplicated entries.
	//
	// Returns:
	//   - int: the entry count
	Count() int

	// Writers retrieves the writer registry so hosts can install custom
	// emitters.
	//
	// Returns:
	//   - *writer.Registry: the registry consulted by Acquire
	Writers() *writer.Registry
}

var _ Manager = &manager{}

// ManagerOption configures a Manager at construction.
type ManagerOption func(*manager)

// WithWriterRegistry replaces the default writer registry.
//
// Parameters:
//   - r: the registry to consult for language tags
//
// Returns:
//   - ManagerOption: the option
func WithWriterRegistry(r *writer.Registry) ManagerOption {
	return func(m *manager) {
		m.writers = r
	}
}

// WithSourceCache installs a source cache that receives every generated pair.
//
// Parameters:
//   - c: the cache to store sources in
//
// Returns:
//   - ManagerOption: the option
func WithSourceCache(c SourceCache) ManagerOption {
	return func(m *manager) {
		m.cache = c
	}
}

// NewManager creates a program manager over a host compiler.
//
// Parameters:
//   - compiler: the host program compiler; must not be nil
//   - options: optional configuration
//
// Returns:
//   - Manager: the new manager
func NewManager(compiler host.ProgramCompiler, options ...ManagerOption) Manager {
	if compiler == nil {
		panic("program: compiler is required")
	}
	m := &manager{
		writers:  writer.NewRegistry(),
		compiler: compiler,
		entries:  make(map[uint64]*entry),
		failures: make(map[uint64]error),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *manager) Acquire(set *ir.ProgramSet, language, vertexProfile, pixelProfile string) (*Programs, error) {
	w, err := m.writers.ForLanguage(language)
	if err != nil {
		return nil, err
	}
	vertexSource, err := w.Write(set.Vertex())
	if err != nil {
		return nil, err
	}
	pixelSource, err := w.Write(set.Pixel())
	if err != nil {
		return nil, err
	}
	hash := fingerprint(language, vertexSource, pixelSource, set.Vertex().LayoutString(), set.Pixel().LayoutString())

	m.mu.Lock()
	defer m.mu.Unlock()

	if failure, memoized := m.failures[hash]; memoized {
		return nil, failure
	}
	if e, exists := m.entries[hash]; exists {
		e.refs++
		return e.programs, nil
	}

	programs := &Programs{
		Hash:         hash,
		Language:     language,
		VertexSource: vertexSource,
		PixelSource:  pixelSource,
	}
	if vertexSource != "" {
		programs.Vertex, err = m.compiler.Compile(ir.StageVertex, language, vertexProfile, programName(hash, ir.StageVertex), vertexSource)
		if err != nil {
			return nil, m.memoize(hash, ir.StageVertex, err)
		}
	}
	if pixelSource != "" {
		programs.Pixel, err = m.compiler.Compile(ir.StagePixel, language, pixelProfile, programName(hash, ir.StagePixel), pixelSource)
		if err != nil {
			return nil, m.memoize(hash, ir.StagePixel, err)
		}
	}

	if m.cache != nil {
		m.cache.Store(hash, language, vertexSource, pixelSource)
	}
	m.entries[hash] = &entry{programs: programs, refs: 1}
	return programs, nil
}

func (m *manager) Release(hash uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, exists := m.entries[hash]
	if !exists {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(m.entries, hash)
	}
}

func (m *manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[uint64]*entry)
	m.failures = make(map[uint64]error)
	if m.cache != nil {
		m.cache.Clear()
	}
}

func (m *manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *manager) Writers() *writer.Registry {
	return m.writers
}

// memoize records a compile failure under the fingerprint and returns the
// wrapped error. Callers hold m.mu.
func (m *manager) memoize(hash uint64, stage ir.Stage, cause error) error {
	wrapped := fmt.Errorf("%w: %s %s: %v", ErrCompileFailed, programName(hash, stage), stage, cause)
	m.failures[hash] = wrapped
	log.Printf("shadergen: program %s failed to compile: %v", programName(hash, stage), cause)
	return wrapped
}

// programName derives the stable host-visible program name for one stage of a
// fingerprinted pair.
func programName(hash uint64, stage ir.Stage) string {
	suffix := "vs"
	if stage == ir.StagePixel {
		suffix = "ps"
	}
	return fmt.Sprintf("sg_%016x_%s", hash, suffix)
}

// fingerprint folds the language tag, both source texts, and both parameter
// layouts into one 64-bit FNV-1a content hash.
func fingerprint(language, vertexSource, pixelSource, vertexLayout, pixelLayout string) uint64 {
	h := fnv.New64a()
	for _, part := range []string{language, vertexSource, pixelSource, vertexLayout, pixelLayout} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
