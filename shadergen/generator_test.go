package shadergen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

const srcScheme = "Default"

// newLitMaterial builds a material with one fixed-function pass: dynamic
// lighting plus a single 2D diffuse layer.
func newLitMaterial(name string) *host.MemoryMaterial {
	m := host.NewMemoryMaterial(name, "General")
	tech := &host.MemoryTechnique{Scheme: srcScheme}
	tech.AddPass(host.NewMemoryPass(
		host.WithLighting(true),
		host.WithTextureUnit("diffuse_map"),
	))
	m.TechList = append(m.TechList, tech)
	return m
}

func newGenerator(t *testing.T, compiler host.ProgramCompiler) *shadergen.Generator {
	t.Helper()
	g, err := shadergen.New(compiler, shadergen.WithTargetLanguage("glsl"))
	require.NoError(t, err)
	t.Cleanup(g.Shutdown)
	return g
}

// render drives one frame setup: scene observation plus scheme validation.
func render(t *testing.T, g *shadergen.Generator, scene host.SceneManager, schemeName string) {
	t.Helper()
	require.NoError(t, g.PreFindVisibleObjects(scene, &host.MemoryViewport{Scheme: schemeName}))
}

// generatedPass retrieves the pass of the material's generated technique on
// the given scheme.
func generatedPass(t *testing.T, m *host.MemoryMaterial, schemeName string) *host.MemoryPass {
	t.Helper()
	for _, tech := range m.TechList {
		if tech.SchemeName() == schemeName {
			passes := tech.Passes()
			require.Len(t, passes, 1)
			return passes[0].(*host.MemoryPass)
		}
	}
	t.Fatalf("material %q has no technique on scheme %q", m.MatName, schemeName)
	return nil
}

func TestGeneratedTechniqueCoversFixedFunctionPass(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	g := newGenerator(t, compiler)
	scene := host.NewMemorySceneManager(host.LightCounts{0, 1, 0}, host.FogNone)

	m := newLitMaterial("ninja")
	created, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	require.True(t, created)

	// Registration alone builds nothing; the scheme validates lazily.
	assert.Len(t, m.TechList, 1)
	assert.Empty(t, compiler.Compiled)

	render(t, g, scene, shadergen.DefaultSchemeName)

	pass := generatedPass(t, m, shadergen.DefaultSchemeName)
	require.True(t, pass.HasVertexProgram())
	require.True(t, pass.HasFragmentProgram())
	assert.Len(t, compiler.Compiled, 2)

	target := g.TargetRenderStateFor(pass)
	require.NotNil(t, target)
	modules := target.SubRenderStates()
	require.NotEmpty(t, modules)
	assert.Equal(t, srs.TypeTransform, modules[0].Type(), "transform always leads the pipeline")
	tags := make([]string, len(modules))
	for i, s := range modules {
		tags[i] = s.Type()
	}
	assert.Contains(t, tags, srs.TypePerVertexLighting)
	assert.Contains(t, tags, srs.TypeTexturing)
	assert.NotContains(t, tags, srs.TypeFog, "fogless pass gets no fog module")
	assert.Equal(t, host.LightCounts{0, 1, 0}, target.LightCounts())

	assert.True(t, pass.BoundAutoConstant(ir.AutoWorldViewProjMatrix, 0))
	assert.True(t, pass.BoundAutoConstant(ir.AutoLightDiffuseColour, 0))
}

func TestIdenticalPassesShareOneProgramPair(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	g := newGenerator(t, compiler)
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	a := newLitMaterial("crate_a")
	b := newLitMaterial("crate_b")
	for _, m := range []*host.MemoryMaterial{a, b} {
		_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
		require.NoError(t, err)
	}

	render(t, g, scene, shadergen.DefaultSchemeName)

	ta := g.TargetRenderStateFor(generatedPass(t, a, shadergen.DefaultSchemeName))
	tb := g.TargetRenderStateFor(generatedPass(t, b, shadergen.DefaultSchemeName))
	require.NotNil(t, ta)
	require.NotNil(t, tb)

	assert.Equal(t, ta.ProgramHash(), tb.ProgramHash())
	assert.Same(t, ta.Programs(), tb.Programs(), "equal content shares one compiled pair")
	assert.Equal(t, 1, g.Programs().Count())
	assert.Len(t, compiler.Compiled, 2)
}

func TestInvalidateMaterialRebuildsOnlyThatMaterial(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	g := newGenerator(t, compiler)
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	a := newLitMaterial("wall")
	b := newLitMaterial("floor")
	for _, m := range []*host.MemoryMaterial{a, b} {
		_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
		require.NoError(t, err)
	}
	render(t, g, scene, shadergen.DefaultSchemeName)

	passA := generatedPass(t, a, shadergen.DefaultSchemeName)
	passB := generatedPass(t, b, shadergen.DefaultSchemeName)
	compiler.Compiled = nil

	g.InvalidateMaterial(shadergen.DefaultSchemeName, "wall", shadergen.GroupAutoDetect)
	render(t, g, scene, shadergen.DefaultSchemeName)

	rebuiltA := generatedPass(t, a, shadergen.DefaultSchemeName)
	assert.NotSame(t, passA, rebuiltA, "invalidated material is rebuilt")
	assert.Same(t, passB, generatedPass(t, b, shadergen.DefaultSchemeName), "untouched material keeps its artifacts")
	assert.Empty(t, compiler.Compiled, "unchanged content resolves from the live program cache")
	assert.Equal(t, 1, g.Programs().Count())
}

func TestLightCountChangesRefreshMonotonically(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("terrain")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)

	pass := generatedPass(t, m, shadergen.DefaultSchemeName)
	hashOne := g.TargetRenderStateFor(pass).ProgramHash()

	// More lights: the scheme invalidates and the programs change.
	scene.SetActiveLightCounts(host.LightCounts{2, 0, 0})
	render(t, g, scene, shadergen.DefaultSchemeName)

	pass = generatedPass(t, m, shadergen.DefaultSchemeName)
	target := g.TargetRenderStateFor(pass)
	assert.NotEqual(t, hashOne, target.ProgramHash())
	assert.Equal(t, host.LightCounts{2, 0, 0}, target.LightCounts())
	assert.True(t, pass.BoundAutoConstant(ir.AutoLightDiffuseColour, 1))

	// Fewer lights: tolerated, nothing rebuilds.
	scene.SetActiveLightCounts(host.LightCounts{1, 0, 0})
	render(t, g, scene, shadergen.DefaultSchemeName)
	assert.Same(t, pass, generatedPass(t, m, shadergen.DefaultSchemeName))
}

func TestFogModeChangeInvalidates(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("swamp")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)
	pass := generatedPass(t, m, shadergen.DefaultSchemeName)

	scene.SetFogMode(host.FogExp2)
	render(t, g, scene, shadergen.DefaultSchemeName)
	assert.NotSame(t, pass, generatedPass(t, m, shadergen.DefaultSchemeName))
}

func TestCustomRenderStateChangesPrograms(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("soldier")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)
	hashPlain := g.TargetRenderStateFor(generatedPass(t, m, shadergen.DefaultSchemeName)).ProgramHash()

	rs, err := g.PassRenderState(shadergen.DefaultSchemeName, m, 0)
	require.NoError(t, err)
	skin, ok := g.Factories().CreateFromProperty(srs.TypeHardwareSkinning, []string{"16"})
	require.True(t, ok)
	rs.AddSubRenderState(skin)

	g.InvalidateMaterial(shadergen.DefaultSchemeName, "soldier", shadergen.GroupAutoDetect)
	render(t, g, scene, shadergen.DefaultSchemeName)

	target := g.TargetRenderStateFor(generatedPass(t, m, shadergen.DefaultSchemeName))
	assert.NotEqual(t, hashPlain, target.ProgramHash())
	modules := target.SubRenderStates()
	require.NotEmpty(t, modules)
	assert.Equal(t, srs.TypeHardwareSkinning, modules[0].Type(), "skinning shares the transform bucket and was inserted first")

	// The custom state survives the next rebuild as well.
	g.InvalidateScheme(shadergen.DefaultSchemeName)
	render(t, g, scene, shadergen.DefaultSchemeName)
	assert.Equal(t, target.ProgramHash(),
		g.TargetRenderStateFor(generatedPass(t, m, shadergen.DefaultSchemeName)).ProgramHash())
}

func TestPassRenderStateErrors(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})

	m := newLitMaterial("orphan")
	_, err := g.PassRenderState(shadergen.DefaultSchemeName, m, 0)
	assert.ErrorIs(t, err, shadergen.ErrMaterialNotRegistered)

	_, err = g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	_, err = g.PassRenderState(shadergen.DefaultSchemeName, m, 3)
	assert.ErrorIs(t, err, shadergen.ErrPassIndexOutOfRange)
}

func TestCreateShaderBasedTechniqueEdgeCases(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})

	m := newLitMaterial("barrel")
	created, err := g.CreateShaderBasedTechnique(m, "NoSuchScheme", shadergen.DefaultSchemeName)
	assert.False(t, created)
	assert.ErrorIs(t, err, shadergen.ErrSourceTechniqueMissing)

	created, err = g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	assert.False(t, created, "re-registration is a no-op")
}

func TestProgrammablePassIsSkipped(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	g := newGenerator(t, compiler)
	scene := host.NewMemorySceneManager(host.LightCounts{}, host.FogNone)

	m := host.NewMemoryMaterial("custom_shader", "General")
	tech := &host.MemoryTechnique{Scheme: srcScheme}
	pass := host.NewMemoryPass()
	pass.SetVertexProgram(&host.MemoryProgram{ProgramName: "hand_written"})
	tech.AddPass(pass)
	m.TechList = append(m.TechList, tech)

	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)

	assert.Empty(t, compiler.Compiled, "programmable source passes keep their own shaders")
	assert.Nil(t, g.TargetRenderStateFor(generatedPass(t, m, shadergen.DefaultSchemeName)))
}

func TestRemoveShaderBasedTechniqueCleansUp(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("debris")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)

	pass := generatedPass(t, m, shadergen.DefaultSchemeName)
	require.Equal(t, 1, g.Programs().Count())

	assert.True(t, g.RemoveShaderBasedTechnique(m, shadergen.DefaultSchemeName))
	assert.Len(t, m.TechList, 1, "only the source technique remains")
	assert.Nil(t, g.TargetRenderStateFor(pass))
	assert.Equal(t, 0, g.Programs().Count())

	assert.False(t, g.RemoveShaderBasedTechnique(m, shadergen.DefaultSchemeName))
}

func TestFlushShaderCacheRebuildsWithStableHashes(t *testing.T) {
	compiler := &host.MemoryCompiler{}
	g := newGenerator(t, compiler)
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("statue")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)

	before := g.TargetRenderStateFor(generatedPass(t, m, shadergen.DefaultSchemeName))
	submitted := len(compiler.Compiled)

	g.FlushShaderCache()
	assert.Equal(t, 0, g.Programs().Count())

	render(t, g, scene, shadergen.DefaultSchemeName)
	after := g.TargetRenderStateFor(generatedPass(t, m, shadergen.DefaultSchemeName))
	require.NotNil(t, after)
	assert.Equal(t, before.ProgramHash(), after.ProgramHash(), "content hashes are stable across flushes")
	assert.NotSame(t, before.Programs(), after.Programs())
	assert.Greater(t, len(compiler.Compiled), submitted, "flush forces recompilation")
}

func TestCompileFailureLeavesSourcePassRendering(t *testing.T) {
	compiler := &host.MemoryCompiler{FailNames: []string{}}
	g := newGenerator(t, compiler)
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("cursed")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)

	// First drive a clean build to learn the program names, then flush and
	// replay with the compiler rejecting them.
	render(t, g, scene, shadergen.DefaultSchemeName)
	for _, p := range compiler.Compiled {
		compiler.FailNames = append(compiler.FailNames, p.ProgramName)
	}
	g.FlushShaderCache()

	err = g.PreFindVisibleObjects(scene, &host.MemoryViewport{Scheme: shadergen.DefaultSchemeName})
	require.ErrorIs(t, err, shadergen.ErrBuildFailed)

	// The generated technique exists but its failed pass was removed, and the
	// scheme stays out of date for a later retry.
	for _, tech := range m.TechList {
		if tech.SchemeName() == shadergen.DefaultSchemeName {
			assert.Empty(t, tech.Passes())
		}
	}
	// The failure is memoized per fingerprint, so a retry needs a flush.
	compiler.FailNames = nil
	g.FlushShaderCache()
	render(t, g, scene, shadergen.DefaultSchemeName)
	assert.True(t, generatedPass(t, m, shadergen.DefaultSchemeName).HasVertexProgram())
}

func TestNotifyRenderSingleObjectHonoursSuppression(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})
	scene := host.NewMemorySceneManager(host.LightCounts{1, 0, 0}, host.FogNone)

	m := newLitMaterial("npc")
	_, err := g.CreateShaderBasedTechnique(m, srcScheme, shadergen.DefaultSchemeName)
	require.NoError(t, err)
	render(t, g, scene, shadergen.DefaultSchemeName)

	pass := generatedPass(t, m, shadergen.DefaultSchemeName)
	assert.NotPanics(t, func() {
		g.NotifyRenderSingleObject(nil, pass, nil, nil, true)
		g.NotifyRenderSingleObject(nil, pass, nil, nil, false)
	})
}

func TestSetTargetLanguageValidates(t *testing.T) {
	g := newGenerator(t, &host.MemoryCompiler{})

	assert.Error(t, g.SetTargetLanguage("cg"))
	assert.Equal(t, "glsl", g.TargetLanguage(), "a rejected tag keeps the previous language")

	require.NoError(t, g.SetTargetLanguage("wgsl"))
	assert.Equal(t, "wgsl", g.TargetLanguage())
}
