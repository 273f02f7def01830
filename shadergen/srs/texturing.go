package srs

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypeTexturing is the type tag of the layered texturing module.
const TypeTexturing = "texturing"

// TextureLayer is the captured configuration for one texture unit of the
// source pass.
type TextureLayer struct {
	// Name is the texture unit name, used for the sampler identifier.
	Name string

	// Kind is the texture dimensionality.
	Kind host.TextureKind

	// CoordSet is the texture coordinate set the layer samples with.
	CoordSet int
}

// texLayerParams holds the resolved parameters for one layer.
type texLayerParams struct {
	sampler ir.Parameter
	vsIn    ir.Parameter
	vsOut   ir.Parameter
	psIn    ir.Parameter
	texel   ir.Parameter
}

// texturingSRS samples and modulates every texture layer of the pass into the
// running fragment colour. One module instance covers all layers; the layer
// list is captured from the source pass in PreAddToRenderState and survives
// cloning through CopyFrom.
type texturingSRS struct {
	// Layers is the captured texture layer list in blend order.
	Layers []TextureLayer

	params []texLayerParams
	psCol  ir.Parameter
	psOut  ir.Parameter
}

var _ SubRenderState = &texturingSRS{}

// NewTexturing creates the layered texturing module.
//
// Returns:
//   - SubRenderState: the new module
func NewTexturing() SubRenderState {
	return &texturingSRS{}
}

func (t *texturingSRS) Type() string {
	return TypeTexturing
}

func (t *texturingSRS) ExecutionOrder() ExecutionOrder {
	return OrderTexturing
}

func (t *texturingSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*texturingSRS); ok {
		CloneState(t, o)
	}
}

func (t *texturingSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	units := srcPass.TextureUnits()
	if len(units) == 0 && len(t.Layers) == 0 {
		return false
	}
	if len(units) > 0 {
		t.Layers = t.Layers[:0]
		for _, u := range units {
			t.Layers = append(t.Layers, TextureLayer{Name: u.Name(), Kind: u.Kind(), CoordSet: u.TexCoordSet()})
		}
	}
	return true
}

func (t *texturingSRS) ResolveParameters(ps *ir.ProgramSet) error {
	t.params = t.params[:0]
	for i, layer := range t.Layers {
		var lp texLayerParams
		var err error

		coordType := ir.TypeFloat2
		if layer.Kind == host.TextureCube || layer.Kind == host.Texture3D {
			coordType = ir.TypeFloat3
		}
		if lp.vsIn, err = ps.VertexMain().ResolveInput(ir.SemanticTexCoord, layer.CoordSet, coordType); err != nil {
			return err
		}
		if lp.vsOut, err = ps.VertexMain().ResolveOutput(ir.SemanticTexCoord, layer.CoordSet, coordType); err != nil {
			return err
		}
		if lp.psIn, err = ps.PixelMain().ResolveInput(ir.SemanticTexCoord, layer.CoordSet, coordType); err != nil {
			return err
		}
		if lp.sampler, err = ps.Pixel().ResolveSampler(fmt.Sprintf("sTexture%d", i), layer.Kind.SamplerType()); err != nil {
			return err
		}
		if lp.texel, err = ps.PixelMain().ResolveLocal(fmt.Sprintf("lTexel%d", i), ir.TypeFloat4); err != nil {
			return err
		}
		t.params = append(t.params, lp)
	}

	var err error
	if t.psCol, err = ps.PixelMain().ResolveLocal(localColour, ir.TypeFloat4); err != nil {
		return err
	}
	t.psOut, err = ps.PixelMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	return err
}

func (t *texturingSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	ps.Pixel().AddDependency(DepTexturing)
	return nil
}

func (t *texturingSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	group := OrderTexturing.Group()
	pixel := ps.PixelMain()

	for i, lp := range t.params {
		ps.VertexMain().AddAtom(ir.NewAssignment(group, ir.Out(lp.vsOut), ir.In(lp.vsIn)))

		sampleFunc := FuncSampleTexture2D
		if t.Layers[i].Kind == host.TextureCube {
			sampleFunc = FuncSampleTextureCube
		}
		pixel.AddAtom(ir.NewInvocation(sampleFunc, group,
			ir.In(lp.sampler), ir.In(lp.psIn), ir.Out(lp.texel)))
		pixel.AddAtom(ir.NewBinaryOp(group, ir.OpMultiply,
			ir.Out(t.psCol), ir.In(t.psCol), ir.In(lp.texel)))
	}
	pixel.AddAtom(ir.NewAssignment(group, ir.Out(t.psOut), ir.In(t.psCol)))
	return nil
}

// texturingFactory produces texturing modules.
type texturingFactory struct{}

var _ Factory = &texturingFactory{}

// NewTexturingFactory creates the factory for the texturing module.
//
// Returns:
//   - Factory: the new factory
func NewTexturingFactory() Factory {
	return &texturingFactory{}
}

func (f *texturingFactory) Type() string {
	return TypeTexturing
}

func (f *texturingFactory) Create() SubRenderState {
	return NewTexturing()
}

func (f *texturingFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	return nil, false
}
