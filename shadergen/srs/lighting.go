package srs

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypePerVertexLighting is the type tag of the fixed-function lighting module.
const TypePerVertexLighting = "per_vertex_lighting"

// litLight holds the resolved uniforms for one unrolled light.
type litLight struct {
	lightType   host.LightType
	position    ir.Parameter
	direction   ir.Parameter
	diffuse     ir.Parameter
	attenuation ir.Parameter
	spotParams  ir.Parameter
}

// lightingSRS emits fixed-function per-vertex lighting. The render state's
// resolved light counts are unrolled into one helper invocation per light, so
// the counts are baked into the emitted code and participate in the program
// fingerprint through it.
type lightingSRS struct {
	// Counts is the per-type light count vector baked into the program.
	Counts host.LightCounts

	world    ir.Parameter
	worldIT  ir.Parameter
	ambient  ir.Parameter
	diffuse  ir.Parameter
	emissive ir.Parameter
	lights   []litLight

	vsPosition ir.Parameter
	vsNormal   ir.Parameter
	vsWorldPos ir.Parameter
	vsNormalW  ir.Parameter
	vsColour   ir.Parameter
	psColourIn ir.Parameter
	psColour   ir.Parameter
	psOut      ir.Parameter
}

var _ SubRenderState = &lightingSRS{}

// NewPerVertexLighting creates the fixed-function lighting module.
//
// Returns:
//   - SubRenderState: the new module
func NewPerVertexLighting() SubRenderState {
	return &lightingSRS{}
}

func (l *lightingSRS) Type() string {
	return TypePerVertexLighting
}

func (l *lightingSRS) ExecutionOrder() ExecutionOrder {
	return OrderLighting
}

func (l *lightingSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*lightingSRS); ok {
		l.Counts = o.Counts
	}
}

func (l *lightingSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	l.Counts = rs.LightCounts()
	return true
}

func (l *lightingSRS) ResolveParameters(ps *ir.ProgramSet) error {
	vs := ps.VertexMain()
	vp := ps.Vertex()
	var err error

	if l.vsPosition, err = vs.ResolveInput(ir.SemanticPosition, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if l.vsNormal, err = vs.ResolveInput(ir.SemanticNormal, 0, ir.TypeFloat3); err != nil {
		return err
	}
	if l.vsColour, err = vs.ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if l.vsWorldPos, err = vs.ResolveLocal(localWorldPos, ir.TypeFloat4); err != nil {
		return err
	}
	if l.vsNormalW, err = vs.ResolveLocal(localWorldNormal, ir.TypeFloat3); err != nil {
		return err
	}

	if l.world, err = vp.ResolveAutoUniform(ir.AutoWorldMatrix, 0, ir.TypeMatrix4, 0); err != nil {
		return err
	}
	if l.worldIT, err = vp.ResolveAutoUniform(ir.AutoInverseTransposeWorldMatrix, 0, ir.TypeMatrix4, 0); err != nil {
		return err
	}
	if l.ambient, err = vp.ResolveAutoUniform(ir.AutoAmbientLightColour, 0, ir.TypeFloat4, 0); err != nil {
		return err
	}
	if l.diffuse, err = vp.ResolveAutoUniform(ir.AutoSurfaceDiffuse, 0, ir.TypeFloat4, 0); err != nil {
		return err
	}
	if l.emissive, err = vp.ResolveAutoUniform(ir.AutoSurfaceEmissive, 0, ir.TypeFloat4, 0); err != nil {
		return err
	}

	if err = l.resolveLights(vp); err != nil {
		return err
	}

	if l.psColourIn, err = ps.PixelMain().ResolveInput(ir.SemanticColour, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if l.psColour, err = ps.PixelMain().ResolveLocal(localColour, ir.TypeFloat4); err != nil {
		return err
	}
	l.psOut, err = ps.PixelMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	return err
}

// resolveLights unrolls the baked light counts into per-light uniforms. The
// payload index runs across all types so every light's uniforms stay unique.
func (l *lightingSRS) resolveLights(vp ir.Program) error {
	l.lights = l.lights[:0]
	idx := uint32(0)
	for t, count := range l.Counts {
		lightType := host.LightType(t)
		for i := 0; i < count; i++ {
			lit := litLight{lightType: lightType}
			var err error
			if lit.diffuse, err = vp.ResolveAutoUniform(ir.AutoLightDiffuseColour, idx, ir.TypeFloat4, 0); err != nil {
				return err
			}
			if lightType == host.LightDirectional || lightType == host.LightSpot {
				if lit.direction, err = vp.ResolveAutoUniform(ir.AutoLightDirection, idx, ir.TypeFloat4, 0); err != nil {
					return err
				}
			}
			if lightType == host.LightPoint || lightType == host.LightSpot {
				if lit.position, err = vp.ResolveAutoUniform(ir.AutoLightPosition, idx, ir.TypeFloat4, 0); err != nil {
					return err
				}
				if lit.attenuation, err = vp.ResolveAutoUniform(ir.AutoLightAttenuation, idx, ir.TypeFloat4, 0); err != nil {
					return err
				}
			}
			if lightType == host.LightSpot {
				if lit.spotParams, err = vp.ResolveAutoUniform(ir.AutoSpotlightParams, idx, ir.TypeFloat4, 0); err != nil {
					return err
				}
			}
			l.lights = append(l.lights, lit)
			idx++
		}
	}
	return nil
}

func (l *lightingSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	ps.Vertex().AddDependency(DepCommon)
	ps.Vertex().AddDependency(DepLighting)
	return nil
}

func (l *lightingSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	vs := ps.VertexMain()
	group := OrderLighting.Group()

	vs.AddAtom(ir.NewInvocation(FuncTransformPosition, group,
		ir.In(l.world), ir.In(l.vsPosition), ir.Out(l.vsWorldPos)))
	vs.AddAtom(ir.NewInvocation(FuncTransformNormal, group,
		ir.In(l.worldIT), ir.In(l.vsNormal), ir.Out(l.vsNormalW)))
	vs.AddAtom(ir.NewInvocation(FuncLightAmbient, group,
		ir.In(l.ambient), ir.In(l.diffuse), ir.In(l.emissive), ir.Out(l.vsColour)))

	for _, lit := range l.lights {
		switch lit.lightType {
		case host.LightDirectional:
			vs.AddAtom(ir.NewInvocation(FuncLightDirectional, group,
				ir.In(l.vsNormalW), ir.In(lit.direction), ir.In(lit.diffuse),
				ir.In(l.diffuse), ir.InOut(l.vsColour)))
		case host.LightPoint:
			vs.AddAtom(ir.NewInvocation(FuncLightPoint, group,
				ir.In(l.vsWorldPos), ir.In(l.vsNormalW), ir.In(lit.position),
				ir.In(lit.attenuation), ir.In(lit.diffuse), ir.In(l.diffuse), ir.InOut(l.vsColour)))
		case host.LightSpot:
			vs.AddAtom(ir.NewInvocation(FuncLightSpot, group,
				ir.In(l.vsWorldPos), ir.In(l.vsNormalW), ir.In(lit.position), ir.In(lit.direction),
				ir.In(lit.attenuation), ir.In(lit.spotParams), ir.In(lit.diffuse),
				ir.In(l.diffuse), ir.InOut(l.vsColour)))
		}
	}

	pixel := ps.PixelMain()
	pixel.AddAtom(ir.NewAssignment(group, ir.Out(l.psColour), ir.In(l.psColourIn)))
	pixel.AddAtom(ir.NewAssignment(group, ir.Out(l.psOut), ir.In(l.psColour)))
	return nil
}

// lightingFactory produces fixed-function lighting modules.
type lightingFactory struct{}

var _ Factory = &lightingFactory{}

// NewPerVertexLightingFactory creates the factory for the lighting module.
//
// Returns:
//   - Factory: the new factory
func NewPerVertexLightingFactory() Factory {
	return &lightingFactory{}
}

func (f *lightingFactory) Type() string {
	return TypePerVertexLighting
}

func (f *lightingFactory) Create() SubRenderState {
	return NewPerVertexLighting()
}

func (f *lightingFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	return nil, false
}
