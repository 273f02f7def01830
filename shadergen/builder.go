package shadergen

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

// composeRenderState assembles the render state for one destination pass in
// the canonical order: the pass's custom render state first, then the
// scheme's global render state (skipping types already present), then the
// minimum fixed-function coverage implied by the source pass. The result is
// what the linking pipeline consumes; it never holds two modules of one type.
func (g *Generator) composeRenderState(sgp *sgPass, scheme *Scheme) (*srs.RenderState, error) {
	rs := srs.NewRenderState()

	if sgp.custom != nil {
		if err := rs.Resolve(sgp.custom, g.factories); err != nil {
			return nil, err
		}
	}
	if err := rs.Resolve(scheme.renderState, g.factories); err != nil {
		return nil, err
	}
	if err := g.addFixedFunctionCoverage(rs, sgp); err != nil {
		return nil, err
	}

	if rs.FogMode() == host.FogNone {
		rs.SetFogMode(sgp.srcPass.FogMode())
	}

	detected := scheme.cachedLights
	if g.activeScene != nil {
		detected = g.activeScene.ActiveLightCounts()
	}
	rs.ResolveLightCounts(detected)
	return rs, nil
}

// addFixedFunctionCoverage appends the modules needed to reproduce the source
// pass's fixed-function behaviour, each only when no module of its type is
// already present: always a transform; skinning when the material carries a
// bone record; colour propagation when vertex colours are tracked or no
// lighting supplies a base colour; lighting, one texturing module for all
// layers, fog, and alpha test as the pass state demands.
func (g *Generator) addFixedFunctionCoverage(rs *srs.RenderState, sgp *sgPass) error {
	src := sgp.srcPass
	material := sgp.parent.parent.material

	if data, ok := host.UserDataAs[srs.SkinningData](material, srs.SkinningDataKey); ok && data.BoneCount > 0 {
		if rs.SubRenderState(srs.TypeHardwareSkinning) == nil {
			m, err := g.factories.Create(srs.TypeHardwareSkinning)
			if err != nil {
				return err
			}
			srs.ConfigureSkinning(m, data)
			rs.AddSubRenderState(m)
		}
	}

	coverage := []struct {
		typeTag string
		needed  bool
	}{
		{srs.TypeTransform, true},
		{srs.TypeVertexColour, src.VertexColourTracking() || !src.LightingEnabled()},
		{srs.TypePerVertexLighting, src.LightingEnabled()},
		{srs.TypeTexturing, len(src.TextureUnits()) > 0},
		{srs.TypeFog, src.FogMode() != host.FogNone},
		{srs.TypeAlphaTest, src.AlphaRejectEnabled()},
	}
	for _, c := range coverage {
		if !c.needed || rs.SubRenderState(c.typeTag) != nil {
			continue
		}
		m, err := g.factories.Create(c.typeTag)
		if err != nil {
			return err
		}
		rs.AddSubRenderState(m)
	}
	return nil
}
