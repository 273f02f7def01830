package shadergen

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

// sgMaterial is the index record for one registered host material and the
// shader-based techniques synthesized for it.
type sgMaterial struct {
	material   host.Material
	techniques []*sgTechnique
}

// sgTechnique maps one source technique to its generated destination
// technique under a scheme. Custom render states are keyed by source pass
// index so they survive the destroy-and-rebuild cycle of the destination
// technique.
type sgTechnique struct {
	parent *sgMaterial
	scheme *Scheme

	srcTechnique  host.Technique
	dstTechnique  host.Technique
	dstSchemeName string

	passes   []*sgPass
	customRS map[int]*srs.RenderState

	buildPending bool
}

// sgPass pairs one source pass with its generated destination pass.
// Illumination-derived passes carry a stage tag and share the custom render
// state of the pass they derive from.
type sgPass struct {
	parent *sgTechnique

	srcPass host.Pass
	dstPass host.Pass
	stage   host.IlluminationStage

	custom *srs.RenderState
	target *TargetRenderState
}

// customRenderState returns the persistent custom render state for a source
// pass index, creating it on first use.
func (t *sgTechnique) customRenderState(passIndex int) *srs.RenderState {
	if t.customRS == nil {
		t.customRS = make(map[int]*srs.RenderState)
	}
	rs, exists := t.customRS[passIndex]
	if !exists {
		rs = srs.NewRenderState()
		t.customRS[passIndex] = rs
	}
	return rs
}
