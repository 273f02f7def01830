package shadergen

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/program"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

// TargetRenderState is the built artifact bound to one destination pass: the
// compiled program pair (held through the program manager's reference count),
// the modules that survived the veto phase, the per-draw parameter hooks, and
// the light counts actually baked into the generated code.
type TargetRenderState struct {
	srcPass host.Pass
	dstPass host.Pass

	modules  []srs.SubRenderState
	programs *program.Programs
	perDraw  []srs.PerDrawUpdater

	lightCounts host.LightCounts
}

// ProgramHash retrieves the content fingerprint of the pass's program pair.
//
// Returns:
//   - uint64: the fingerprint
func (t *TargetRenderState) ProgramHash() uint64 {
	return t.programs.Hash
}

// Programs retrieves the shared compiled program pair.
//
// Returns:
//   - *program.Programs: the pair
func (t *TargetRenderState) Programs() *program.Programs {
	return t.programs
}

// SubRenderStates retrieves the modules that contributed to the build, in
// execution order.
//
// Returns:
//   - []srs.SubRenderState: the active modules
func (t *TargetRenderState) SubRenderStates() []srs.SubRenderState {
	return t.modules
}

// LightCounts retrieves the light count vector baked into the generated code.
//
// Returns:
//   - host.LightCounts: (directional, point, spot)
func (t *TargetRenderState) LightCounts() host.LightCounts {
	return t.lightCounts
}

// UpdatePerDrawParameters invokes every per-draw parameter hook collected at
// build time. Called from the notify-render-single-object host hook.
//
// Parameters:
//   - renderable: the host's opaque per-object handle
//   - source: the host's auto-parameter source
//   - lights: the lights affecting this draw
func (t *TargetRenderState) UpdatePerDrawParameters(renderable host.Renderable, source host.AutoParamSource, lights []host.Light) {
	for _, hook := range t.perDraw {
		hook.UpdateGpuProgramParameters(renderable, t.dstPass, source, lights)
	}
}

// buildTarget runs the linking pipeline for one destination pass: the veto
// phase, the three global resolve/emit phases, interpolant linking, program
// acquisition, program attachment, and the auto-constant binding plan. On
// error nothing is published.
func (g *Generator) buildTarget(sgp *sgPass, rs *srs.RenderState) (*TargetRenderState, error) {
	ps := ir.NewProgramSet()

	modules := make([]srs.SubRenderState, 0, rs.Len())
	for _, m := range rs.SubRenderStates() {
		if !m.PreAddToRenderState(rs, sgp.srcPass, sgp.dstPass) {
			continue
		}
		modules = append(modules, m)
	}

	for _, m := range modules {
		if err := m.ResolveParameters(ps); err != nil {
			return nil, fmt.Errorf("%w: %s: resolve parameters: %v", ErrBuildFailed, m.Type(), err)
		}
	}
	for _, m := range modules {
		if err := m.ResolveDependencies(ps); err != nil {
			return nil, fmt.Errorf("%w: %s: resolve dependencies: %v", ErrBuildFailed, m.Type(), err)
		}
	}
	for _, m := range modules {
		if err := m.AddFunctionInvocations(ps); err != nil {
			return nil, fmt.Errorf("%w: %s: add invocations: %v", ErrBuildFailed, m.Type(), err)
		}
	}

	if err := ps.Link(g.compaction, g.maxInterpolants); err != nil {
		return nil, fmt.Errorf("%w: link: %v", ErrBuildFailed, err)
	}

	programs, err := g.programs.Acquire(ps, g.targetLanguage, g.vertexProfile, g.fragmentProfile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}

	sgp.dstPass.SetVertexProgram(programs.Vertex)
	sgp.dstPass.SetFragmentProgram(programs.Pixel)
	bindAutoConstants(sgp.dstPass, ps.Vertex())
	bindAutoConstants(sgp.dstPass, ps.Pixel())

	target := &TargetRenderState{
		srcPass:     sgp.srcPass,
		dstPass:     sgp.dstPass,
		modules:     modules,
		programs:    programs,
		lightCounts: rs.LightCounts(),
	}
	for _, m := range modules {
		if hook, ok := m.(srs.PerDrawUpdater); ok {
			target.perDraw = append(target.perDraw, hook)
		}
	}
	return target, nil
}

// releaseTarget drops the pass's program reference and unregisters the
// target from the draw-time lookup table.
func (g *Generator) releaseTarget(t *TargetRenderState) {
	if t == nil {
		return
	}
	g.programs.Release(t.programs.Hash)
	delete(g.targets, t.dstPass)
}

// bindAutoConstants registers an auto-constant entry on the destination pass
// for every auto-bound uniform of one stage program.
func bindAutoConstants(dst host.Pass, p ir.Program) {
	for _, u := range p.Uniforms() {
		if ab := u.AutoBinding(); ab != nil {
			dst.BindAutoConstant(u.Name(), ab.Tag, ab.Data)
		}
	}
}
