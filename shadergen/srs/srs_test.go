package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

func newBuiltinRegistry(t *testing.T) *srs.Registry {
	t.Helper()
	r := srs.NewRegistry()
	require.NoError(t, srs.RegisterBuiltins(r))
	return r
}

func TestRegistryRejectsDuplicateFactory(t *testing.T) {
	r := newBuiltinRegistry(t)

	var fogFactory srs.Factory
	for _, f := range r.Factories() {
		if f.Type() == srs.TypeFog {
			fogFactory = f
		}
	}
	require.NotNil(t, fogFactory)
	assert.ErrorIs(t, r.Register(fogFactory), srs.ErrDuplicateFactory)

	// The original factory stays usable after the rejected registration.
	s, err := r.Create(srs.TypeFog)
	require.NoError(t, err)
	assert.Equal(t, srs.TypeFog, s.Type())
}

func TestRegistryUnknownType(t *testing.T) {
	r := srs.NewRegistry()
	_, err := r.Create("no_such_module")
	assert.ErrorIs(t, err, srs.ErrUnknownType)
	assert.False(t, r.Has("no_such_module"))
}

func TestAddSubRenderStateReplacesByType(t *testing.T) {
	r := newBuiltinRegistry(t)
	rs := srs.NewRenderState()

	first, err := r.Create(srs.TypeFog)
	require.NoError(t, err)
	rs.AddSubRenderState(first)

	filler, err := r.Create(srs.TypeTransform)
	require.NoError(t, err)
	rs.AddSubRenderState(filler)

	second, err := r.Create(srs.TypeFog)
	require.NoError(t, err)
	rs.AddSubRenderState(second)

	assert.Equal(t, 2, rs.Len(), "same-type insert replaces, never duplicates")
	assert.Same(t, second, rs.SubRenderState(srs.TypeFog))
}

func TestSubRenderStatesOrderedByBucket(t *testing.T) {
	r := newBuiltinRegistry(t)
	rs := srs.NewRenderState()

	for _, tag := range []string{srs.TypeAlphaTest, srs.TypeFog, srs.TypeTransform, srs.TypeTexturing} {
		s, err := r.Create(tag)
		require.NoError(t, err)
		rs.AddSubRenderState(s)
	}

	ordered := rs.SubRenderStates()
	require.Len(t, ordered, 4)
	tags := make([]string, len(ordered))
	for i, s := range ordered {
		tags[i] = s.Type()
	}
	assert.Equal(t, []string{srs.TypeTransform, srs.TypeTexturing, srs.TypeFog, srs.TypeAlphaTest}, tags)
}

func TestResolveSkipsPresentTypes(t *testing.T) {
	r := newBuiltinRegistry(t)

	custom := srs.NewRenderState()
	ownFog, err := r.Create(srs.TypeFog)
	require.NoError(t, err)
	custom.AddSubRenderState(ownFog)

	scheme := srs.NewRenderState()
	schemeFog, err := r.Create(srs.TypeFog)
	require.NoError(t, err)
	scheme.AddSubRenderState(schemeFog)
	schemeLighting, err := r.Create(srs.TypePerVertexLighting)
	require.NoError(t, err)
	scheme.AddSubRenderState(schemeLighting)

	require.NoError(t, custom.Resolve(scheme, r))

	assert.Equal(t, 2, custom.Len())
	assert.Same(t, ownFog, custom.SubRenderState(srs.TypeFog), "present types shadow the merged template")
	merged := custom.SubRenderState(srs.TypePerVertexLighting)
	require.NotNil(t, merged)
	assert.NotSame(t, schemeLighting, merged, "merged modules are clones, not shared instances")
}

func TestResolveCarriesPinnedLightCounts(t *testing.T) {
	r := newBuiltinRegistry(t)

	scheme := srs.NewRenderState()
	scheme.SetLightCounts(host.LightCounts{2, 1, 0})

	composed := srs.NewRenderState()
	require.NoError(t, composed.Resolve(scheme, r))

	assert.False(t, composed.LightCountAutoUpdate())
	assert.Equal(t, host.LightCounts{2, 1, 0}, composed.LightCounts())

	// A pinned vector beats the scene's detected counts.
	composed.ResolveLightCounts(host.LightCounts{5, 5, 5})
	assert.Equal(t, host.LightCounts{2, 1, 0}, composed.LightCounts())
}

func TestResolveLightCountsFollowsSceneWhenAuto(t *testing.T) {
	rs := srs.NewRenderState()
	require.True(t, rs.LightCountAutoUpdate())

	rs.ResolveLightCounts(host.LightCounts{1, 2, 3})
	assert.Equal(t, host.LightCounts{1, 2, 3}, rs.LightCounts())
	assert.True(t, rs.LightCountAutoUpdate(), "auto-detection stays enabled")
}

func TestCloneDeepCopiesModules(t *testing.T) {
	r := newBuiltinRegistry(t)

	rs := srs.NewRenderState()
	skin, ok := r.CreateFromProperty(srs.TypeHardwareSkinning, []string{"24", "skin_normals"})
	require.True(t, ok)
	rs.AddSubRenderState(skin)
	rs.SetFogMode(host.FogExp2)

	clone, err := rs.Clone(r)
	require.NoError(t, err)

	assert.Equal(t, 1, clone.Len())
	assert.NotSame(t, skin, clone.SubRenderState(srs.TypeHardwareSkinning))
	assert.Equal(t, host.FogExp2, clone.FogMode())
}

func TestSkinningFactoryClaimsProperty(t *testing.T) {
	r := newBuiltinRegistry(t)

	s, ok := r.CreateFromProperty(srs.TypeHardwareSkinning, []string{"16"})
	require.True(t, ok)
	assert.Equal(t, srs.TypeHardwareSkinning, s.Type())

	_, ok = r.CreateFromProperty(srs.TypeHardwareSkinning, []string{"zero"})
	assert.False(t, ok, "non-numeric bone count declines the property")

	_, ok = r.CreateFromProperty("unrelated_property", []string{"16"})
	assert.False(t, ok)
}

func TestLightCountsMonotoneComparison(t *testing.T) {
	base := host.LightCounts{2, 1, 0}

	assert.True(t, host.LightCounts{3, 1, 0}.AnyGreaterThan(base))
	assert.True(t, host.LightCounts{0, 0, 1}.AnyGreaterThan(base))
	assert.False(t, host.LightCounts{2, 1, 0}.AnyGreaterThan(base))
	assert.False(t, host.LightCounts{1, 0, 0}.AnyGreaterThan(base), "count decreases are tolerated")
	assert.Equal(t, 3, base.Total())
}
