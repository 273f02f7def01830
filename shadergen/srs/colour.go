package srs

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypeVertexColour is the type tag of the vertex colour propagation module.
const TypeVertexColour = "vertex_colour"

// colourSRS propagates the base fragment colour. With vertex colour tracking
// enabled it routes the per-vertex colour attribute through an interpolant;
// otherwise it seeds the fragment colour chain from the pass's surface diffuse
// colour, which is the fallback the builder uses when no other module produces
// a base colour.
type colourSRS struct {
	// TrackVertexColour selects the per-vertex attribute path.
	TrackVertexColour bool

	vsIn   ir.Parameter
	vsOut  ir.Parameter
	psIn   ir.Parameter
	psCol  ir.Parameter
	psOut  ir.Parameter
	psDiff ir.Parameter
}

var _ SubRenderState = &colourSRS{}

// NewVertexColour creates the colour propagation module.
//
// Returns:
//   - SubRenderState: the new module
func NewVertexColour() SubRenderState {
	return &colourSRS{}
}

func (c *colourSRS) Type() string {
	return TypeVertexColour
}

func (c *colourSRS) ExecutionOrder() ExecutionOrder {
	return OrderColour
}

func (c *colourSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*colourSRS); ok {
		c.TrackVertexColour = o.TrackVertexColour
	}
}

func (c *colourSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	c.TrackVertexColour = srcPass.VertexColourTracking()
	return true
}

func (c *colourSRS) ResolveParameters(ps *ir.ProgramSet) error {
	var err error
	if c.TrackVertexColour {
		if c.vsIn, err = ps.VertexMain().ResolveInput(ir.SemanticColour, 0, ir.TypeFloat4); err != nil {
			return err
		}
		if c.vsOut, err = ps.VertexMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4); err != nil {
			return err
		}
		if c.psIn, err = ps.PixelMain().ResolveInput(ir.SemanticColour, 0, ir.TypeFloat4); err != nil {
			return err
		}
	} else {
		if c.psDiff, err = ps.Pixel().ResolveAutoUniform(ir.AutoSurfaceDiffuse, 0, ir.TypeFloat4, 0); err != nil {
			return err
		}
	}
	if c.psCol, err = ps.PixelMain().ResolveLocal(localColour, ir.TypeFloat4); err != nil {
		return err
	}
	c.psOut, err = ps.PixelMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	return err
}

func (c *colourSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	return nil
}

func (c *colourSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	group := OrderColour.Group()
	if c.TrackVertexColour {
		ps.VertexMain().AddAtom(ir.NewAssignment(group, ir.Out(c.vsOut), ir.In(c.vsIn)))
		ps.PixelMain().AddAtom(ir.NewAssignment(group, ir.Out(c.psCol), ir.In(c.psIn)))
	} else {
		ps.PixelMain().AddAtom(ir.NewAssignment(group, ir.Out(c.psCol), ir.In(c.psDiff)))
	}
	ps.PixelMain().AddAtom(ir.NewAssignment(group, ir.Out(c.psOut), ir.In(c.psCol)))
	return nil
}

// colourFactory produces vertex colour modules.
type colourFactory struct{}

var _ Factory = &colourFactory{}

// NewVertexColourFactory creates the factory for the colour propagation module.
//
// Returns:
//   - Factory: the new factory
func NewVertexColourFactory() Factory {
	return &colourFactory{}
}

func (f *colourFactory) Type() string {
	return TypeVertexColour
}

func (f *colourFactory) Create() SubRenderState {
	return NewVertexColour()
}

func (f *colourFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	return nil, false
}
