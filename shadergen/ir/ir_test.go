package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

func TestResolveInputSharesParameters(t *testing.T) {
	ps := ir.NewProgramSet()
	main := ps.VertexMain()

	first, err := main.ResolveInput(ir.SemanticNormal, 0, ir.TypeFloat3)
	require.NoError(t, err)
	second, err := main.ResolveInput(ir.SemanticNormal, 0, ir.TypeFloat3)
	require.NoError(t, err)

	assert.Same(t, first, second, "identical keys must resolve to one parameter")
	assert.Len(t, main.Inputs(), 1)

	_, err = main.ResolveInput(ir.SemanticNormal, 0, ir.TypeFloat4)
	assert.ErrorIs(t, err, ir.ErrResolveConflict)

	other, err := main.ResolveInput(ir.SemanticTexCoord, 1, ir.TypeFloat2)
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, "iTexcoord1", other.Name())
}

func TestResolveLocalGeneratesUniqueNames(t *testing.T) {
	ps := ir.NewProgramSet()
	main := ps.PixelMain()

	a, err := main.ResolveLocal("", ir.TypeFloat4)
	require.NoError(t, err)
	b, err := main.ResolveLocal("", ir.TypeFloat4)
	require.NoError(t, err)
	assert.NotEqual(t, a.Name(), b.Name())

	named, err := main.ResolveLocal("lColour", ir.TypeFloat4)
	require.NoError(t, err)
	again, err := main.ResolveLocal("lColour", ir.TypeFloat4)
	require.NoError(t, err)
	assert.Same(t, named, again)

	_, err = main.ResolveLocal("lColour", ir.TypeFloat3)
	assert.ErrorIs(t, err, ir.ErrResolveConflict)
}

func TestAtomsOrderedByExecutionGroup(t *testing.T) {
	ps := ir.NewProgramSet()
	main := ps.VertexMain()

	p, err := main.ResolveLocal("lScratch", ir.TypeFloat4)
	require.NoError(t, err)

	// Insertion order deliberately scrambles the buckets; two atoms share
	// bucket 100 so the stable tie-break is observable.
	main.AddAtom(ir.NewInvocation("SG_Fog", 500, ir.InOut(p)))
	main.AddAtom(ir.NewInvocation("SG_TransformA", 100, ir.Out(p)))
	main.AddAtom(ir.NewInvocation("SG_Lighting", 300, ir.InOut(p)))
	main.AddAtom(ir.NewInvocation("SG_TransformB", 100, ir.InOut(p)))

	atoms := main.Atoms()
	require.Len(t, atoms, 4)

	groups := make([]int, len(atoms))
	names := make([]string, len(atoms))
	for i, a := range atoms {
		groups[i] = a.ExecutionGroup()
		names[i] = a.(*ir.Invocation).Name()
	}
	assert.Equal(t, []int{100, 100, 300, 500}, groups)
	assert.Equal(t, []string{"SG_TransformA", "SG_TransformB", "SG_Lighting", "SG_Fog"}, names)
}

func TestAutoUniformIdentityAndNaming(t *testing.T) {
	ps := ir.NewProgramSet()
	prog := ps.Vertex()

	wvp, err := prog.ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix4, 0)
	require.NoError(t, err)
	again, err := prog.ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix4, 0)
	require.NoError(t, err)
	assert.Same(t, wvp, again)
	assert.Equal(t, "uWorldviewprojMatrix", wvp.Name())

	lit0, err := prog.ResolveAutoUniform(ir.AutoLightDiffuseColour, 0, ir.TypeFloat4, 0)
	require.NoError(t, err)
	lit1, err := prog.ResolveAutoUniform(ir.AutoLightDiffuseColour, 1, ir.TypeFloat4, 0)
	require.NoError(t, err)
	assert.NotSame(t, lit0, lit1)
	assert.Equal(t, "uLightDiffuseColour0", lit0.Name())
	assert.Equal(t, "uLightDiffuseColour1", lit1.Name())

	_, err = prog.ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix3, 0)
	assert.ErrorIs(t, err, ir.ErrResolveConflict)
}

func TestSamplerBindingsAreSequential(t *testing.T) {
	ps := ir.NewProgramSet()
	prog := ps.Pixel()

	s0, err := prog.ResolveSampler("uTexture0", ir.TypeSampler2D)
	require.NoError(t, err)
	s1, err := prog.ResolveSampler("uTexture1", ir.TypeSamplerCube)
	require.NoError(t, err)
	assert.Equal(t, 0, s0.Binding())
	assert.Equal(t, 1, s1.Binding())

	_, err = prog.ResolveSampler("uBroken", ir.TypeFloat4)
	assert.ErrorIs(t, err, ir.ErrResolveConflict)
}

func TestLinkRejectsUnmatchedPixelInput(t *testing.T) {
	ps := ir.NewProgramSet()
	_, err := ps.VertexMain().ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	_, err = ps.PixelMain().ResolveInput(ir.SemanticNormal, 0, ir.TypeFloat3)
	require.NoError(t, err)

	assert.ErrorIs(t, ps.Link(ir.CompactMedium, 0), ir.ErrInterpolantMismatch)
}

func TestLinkRejectsTypeMismatch(t *testing.T) {
	ps := ir.NewProgramSet()
	_, err := ps.VertexMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	require.NoError(t, err)
	_, err = ps.PixelMain().ResolveInput(ir.SemanticColour, 0, ir.TypeFloat3)
	require.NoError(t, err)

	assert.ErrorIs(t, ps.Link(ir.CompactLow, 0), ir.ErrInterpolantMismatch)
}

func TestLinkCompactsTexcoordIndices(t *testing.T) {
	ps := ir.NewProgramSet()
	vs, fs := ps.VertexMain(), ps.PixelMain()

	_, err := vs.ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	vOut, err := vs.ResolveOutput(ir.SemanticTexCoord, 5, ir.TypeFloat2)
	require.NoError(t, err)
	fIn, err := fs.ResolveInput(ir.SemanticTexCoord, 5, ir.TypeFloat2)
	require.NoError(t, err)

	require.NoError(t, ps.Link(ir.CompactMedium, 8))

	assert.Equal(t, 0, vOut.Index())
	assert.Equal(t, 0, fIn.Index())
	assert.Equal(t, "vTexcoord0", vOut.Name())
	assert.Equal(t, fIn.Name(), vOut.Name(), "matched interpolants keep identical names")
}

func TestLinkLowCompactionKeepsIndices(t *testing.T) {
	ps := ir.NewProgramSet()
	vOut, err := ps.VertexMain().ResolveOutput(ir.SemanticTexCoord, 3, ir.TypeFloat2)
	require.NoError(t, err)
	_, err = ps.PixelMain().ResolveInput(ir.SemanticTexCoord, 3, ir.TypeFloat2)
	require.NoError(t, err)

	require.NoError(t, ps.Link(ir.CompactLow, 0))
	assert.Equal(t, 3, vOut.Index())
}

func TestLinkEnforcesComponentBudget(t *testing.T) {
	ps := ir.NewProgramSet()
	vs := ps.VertexMain()

	// Position is excluded from the footprint; the three float4 varyings are
	// twelve components against a budget of eight.
	_, err := vs.ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	for i := range 3 {
		_, err = vs.ResolveOutput(ir.SemanticTexCoord, i, ir.TypeFloat4)
		require.NoError(t, err)
	}

	assert.ErrorIs(t, ps.Link(ir.CompactMedium, 8), ir.ErrInterpolantBudget)
	assert.NoError(t, ps.Link(ir.CompactMedium, 12))
}

func TestLayoutStringDistinguishesSamplerBindings(t *testing.T) {
	a := ir.NewProgramSet().Pixel()
	b := ir.NewProgramSet().Pixel()

	_, err := a.ResolveSampler("uTexture0", ir.TypeSampler2D)
	require.NoError(t, err)
	_, err = a.ResolveSampler("uTexture1", ir.TypeSampler2D)
	require.NoError(t, err)

	_, err = b.ResolveSampler("uTexture1", ir.TypeSampler2D)
	require.NoError(t, err)
	_, err = b.ResolveSampler("uTexture0", ir.TypeSampler2D)
	require.NoError(t, err)

	assert.NotEqual(t, a.LayoutString(), b.LayoutString())
}
