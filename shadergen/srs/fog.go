package srs

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypeFog is the type tag of the fog module.
const TypeFog = "fog"

// fogSRS emits fixed-function fog: the vertex stage computes a per-vertex fog
// factor from camera depth, and the pixel stage blends the fog colour into the
// running fragment colour. The fog equation is selected by the baked fog mode,
// so mode changes produce different emitted code and therefore different
// program fingerprints.
type fogSRS struct {
	// Mode is the fog equation baked into the program.
	Mode host.FogMode

	world     ir.Parameter
	cameraPos ir.Parameter
	fogParams ir.Parameter
	fogColour ir.Parameter

	vsPosition ir.Parameter
	vsWorldPos ir.Parameter
	vsDepth    ir.Parameter
	vsFactor   ir.Parameter
	psFactor   ir.Parameter
	psCol      ir.Parameter
	psOut      ir.Parameter
}

var _ SubRenderState = &fogSRS{}

// NewFog creates the fog module.
//
// Returns:
//   - SubRenderState: the new module
func NewFog() SubRenderState {
	return &fogSRS{}
}

func (f *fogSRS) Type() string {
	return TypeFog
}

func (f *fogSRS) ExecutionOrder() ExecutionOrder {
	return OrderFog
}

func (f *fogSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*fogSRS); ok {
		f.Mode = o.Mode
	}
}

func (f *fogSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	if rs.FogMode() != host.FogNone {
		f.Mode = rs.FogMode()
	} else {
		f.Mode = srcPass.FogMode()
	}
	return f.Mode != host.FogNone
}

func (f *fogSRS) ResolveParameters(ps *ir.ProgramSet) error {
	vs := ps.VertexMain()
	vp := ps.Vertex()
	var err error

	if f.vsPosition, err = vs.ResolveInput(ir.SemanticPosition, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if f.vsWorldPos, err = vs.ResolveLocal(localWorldPos, ir.TypeFloat4); err != nil {
		return err
	}
	if f.vsDepth, err = vs.ResolveLocal("lCameraDepth", ir.TypeFloat); err != nil {
		return err
	}
	if f.vsFactor, err = vs.ResolveOutput(ir.SemanticUser, 0, ir.TypeFloat); err != nil {
		return err
	}
	if f.world, err = vp.ResolveAutoUniform(ir.AutoWorldMatrix, 0, ir.TypeMatrix4, 0); err != nil {
		return err
	}
	if f.cameraPos, err = vp.ResolveAutoUniform(ir.AutoCameraPositionWorld, 0, ir.TypeFloat4, 0); err != nil {
		return err
	}
	if f.fogParams, err = vp.ResolveAutoUniform(ir.AutoFogParams, 0, ir.TypeFloat4, 0); err != nil {
		return err
	}

	if f.psFactor, err = ps.PixelMain().ResolveInput(ir.SemanticUser, 0, ir.TypeFloat); err != nil {
		return err
	}
	if f.fogColour, err = ps.Pixel().ResolveAutoUniform(ir.AutoFogColour, 0, ir.TypeFloat4, 0); err != nil {
		return err
	}
	if f.psCol, err = ps.PixelMain().ResolveLocal(localColour, ir.TypeFloat4); err != nil {
		return err
	}
	f.psOut, err = ps.PixelMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	return err
}

func (f *fogSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	ps.Vertex().AddDependency(DepCommon)
	ps.Vertex().AddDependency(DepFog)
	ps.Pixel().AddDependency(DepFog)
	return nil
}

func (f *fogSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	group := OrderFog.Group()
	vs := ps.VertexMain()

	factorFunc := FuncFogFactorLinear
	switch f.Mode {
	case host.FogExp:
		factorFunc = FuncFogFactorExp
	case host.FogExp2:
		factorFunc = FuncFogFactorExp2
	}

	vs.AddAtom(ir.NewInvocation(FuncTransformPosition, group,
		ir.In(f.world), ir.In(f.vsPosition), ir.Out(f.vsWorldPos)))
	vs.AddAtom(ir.NewInvocation(FuncCameraDepth, group,
		ir.In(f.cameraPos), ir.In(f.vsWorldPos), ir.Out(f.vsDepth)))
	vs.AddAtom(ir.NewInvocation(factorFunc, group,
		ir.In(f.vsDepth), ir.In(f.fogParams), ir.Out(f.vsFactor)))

	pixel := ps.PixelMain()
	pixel.AddAtom(ir.NewInvocation(FuncApplyFog, group,
		ir.In(f.psFactor), ir.In(f.fogColour), ir.InOut(f.psCol)))
	pixel.AddAtom(ir.NewAssignment(group, ir.Out(f.psOut), ir.In(f.psCol)))
	return nil
}

// fogFactory produces fog modules.
type fogFactory struct{}

var _ Factory = &fogFactory{}

// NewFogFactory creates the factory for the fog module.
//
// Returns:
//   - Factory: the new factory
func NewFogFactory() Factory {
	return &fogFactory{}
}

func (f *fogFactory) Type() string {
	return TypeFog
}

func (f *fogFactory) Create() SubRenderState {
	return NewFog()
}

func (f *fogFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	return nil, false
}
