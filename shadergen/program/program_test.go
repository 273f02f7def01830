package program_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/program"
)

// buildSet produces a minimal but complete vertex/pixel pair. texIndex varies
// the pixel-stage sampling coordinate so different values yield different
// generated source.
func buildSet(t *testing.T, texIndex int) *ir.ProgramSet {
	t.Helper()
	ps := ir.NewProgramSet()

	vs := ps.VertexMain()
	inPos, err := vs.ResolveInput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	outPos, err := vs.ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	wvp, err := ps.Vertex().ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix4, 0)
	require.NoError(t, err)
	vs.AddAtom(ir.NewBinaryOp(100, ir.OpMultiply, ir.Out(outPos), ir.In(wvp), ir.In(inPos)))
	vOut, err := vs.ResolveOutput(ir.SemanticTexCoord, texIndex, ir.TypeFloat2)
	require.NoError(t, err)
	inUV, err := vs.ResolveInput(ir.SemanticTexCoord, texIndex, ir.TypeFloat2)
	require.NoError(t, err)
	vs.AddAtom(ir.NewAssignment(400, ir.Out(vOut), ir.In(inUV)))

	fs := ps.PixelMain()
	fIn, err := fs.ResolveInput(ir.SemanticTexCoord, texIndex, ir.TypeFloat2)
	require.NoError(t, err)
	fOut, err := fs.ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	require.NoError(t, err)
	local, err := fs.ResolveLocal("lColour", ir.TypeFloat4)
	require.NoError(t, err)
	fs.AddAtom(ir.NewAssignment(400, ir.Out(local), ir.In(fIn)))
	fs.AddAtom(ir.NewAssignment(600, ir.Out(fOut), ir.In(local)))

	require.NoError(t, ps.Link(ir.CompactLow, 0))
	return ps
}

func TestAcquireDeduplicatesByFingerprint(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	m := program.NewManager(compiler)

	first, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)
	second, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)

	assert.Same(t, first, second, "identical content shares one compiled pair")
	assert.Equal(t, 1, m.Count())
	assert.Len(t, compiler.Compiled, 2, "one vertex and one pixel compile in total")

	third, err := m.Acquire(buildSet(t, 1), "glsl", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash, third.Hash)
	assert.Equal(t, 2, m.Count())
}

func TestFingerprintCoversLanguage(t *testing.T) {
	m := program.NewManager(&host.MemoryCompiler{})

	glsl, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)
	hlsl, err := m.Acquire(buildSet(t, 0), "hlsl", "vs_5_0", "ps_5_0")
	require.NoError(t, err)

	assert.NotEqual(t, glsl.Hash, hlsl.Hash)
	assert.NotEqual(t, glsl.VertexSource, hlsl.VertexSource)
}

func TestReleaseEvictsAtZeroReferences(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	m := program.NewManager(compiler)

	first, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)
	_, err = m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)

	m.Release(first.Hash)
	assert.Equal(t, 1, m.Count(), "one holder remains")
	m.Release(first.Hash)
	assert.Equal(t, 0, m.Count())

	// Re-acquiring after eviction compiles fresh programs.
	again, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)
	assert.Equal(t, first.Hash, again.Hash, "content hash is stable across evictions")
	assert.NotSame(t, first, again)
	assert.Len(t, compiler.Compiled, 4)
}

func TestCompileFailureIsMemoized(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	m := program.NewManager(compiler)

	probe, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)
	m.Flush()

	compiler.Compiled = nil
	compiler.FailNames = []string{fmt.Sprintf("sg_%016x_vs", probe.Hash)}

	_, err = m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.ErrorIs(t, err, program.ErrCompileFailed)
	submitted := len(compiler.Compiled)

	_, err2 := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.ErrorIs(t, err2, program.ErrCompileFailed)
	assert.Equal(t, err, err2, "memoized failures return the identical error")
	assert.Len(t, compiler.Compiled, submitted, "no resubmission after a memoized failure")

	// Flush clears the memo so the host can retry after fixing its compiler.
	m.Flush()
	compiler.FailNames = nil
	_, err = m.Acquire(buildSet(t, 0), "glsl", "", "")
	assert.NoError(t, err)
}

func TestNullLanguageSkipsCompilation(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	m := program.NewManager(compiler)

	pair, err := m.Acquire(buildSet(t, 0), "null", "", "")
	require.NoError(t, err)

	assert.Empty(t, pair.VertexSource)
	assert.Empty(t, pair.PixelSource)
	assert.Nil(t, pair.Vertex)
	assert.Nil(t, pair.Pixel)
	assert.Empty(t, compiler.Compiled)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := program.NewDiskCache(dir, 1)
	require.NoError(t, err)

	cache.Store(0xfeed, "glsl", "vertex source", "pixel source")

	// Writes are handed to the worker pool, so poll for completion.
	require.Eventually(t, func() bool {
		vsrc, psrc, ok := cache.Load(0xfeed, "glsl")
		return ok && vsrc == "vertex source" && psrc == "pixel source"
	}, 5*time.Second, 10*time.Millisecond)

	cache.Clear()
	_, _, ok := cache.Load(0xfeed, "glsl")
	assert.False(t, ok)
}

func TestManagerUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := program.NewDiskCache(dir, 1)
	require.NoError(t, err)
	m := program.NewManager(&host.MemoryCompiler{}, program.WithSourceCache(cache))

	pair, err := m.Acquire(buildSet(t, 0), "glsl", "", "")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, _, ok := cache.Load(pair.Hash, "glsl")
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	m.Flush()
	_, _, ok := cache.Load(pair.Hash, "glsl")
	assert.False(t, ok, "flush clears the on-disk sources")
}
