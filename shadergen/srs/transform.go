package srs

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypeTransform is the type tag of the clip-space transform module.
const TypeTransform = "transform"

// transformSRS emits the clip-space position computation every generated
// vertex program needs. It withdraws when the hardware skinning module is
// present, which emits its own transform after blending by the bone palette.
type transformSRS struct {
	wvp      ir.Parameter
	position ir.Parameter
	outPos   ir.Parameter
}

var _ SubRenderState = &transformSRS{}

// NewTransform creates the clip-space transform module.
//
// Returns:
//   - SubRenderState: the new module
func NewTransform() SubRenderState {
	return &transformSRS{}
}

func (t *transformSRS) Type() string {
	return TypeTransform
}

func (t *transformSRS) ExecutionOrder() ExecutionOrder {
	return OrderTransform
}

func (t *transformSRS) CopyFrom(other SubRenderState) {
	// Stateless; nothing to carry.
}

func (t *transformSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	// The skinning module owns the whole TRANSFORM bucket when active.
	return rs.SubRenderState(TypeHardwareSkinning) == nil
}

func (t *transformSRS) ResolveParameters(ps *ir.ProgramSet) error {
	var err error
	if t.position, err = ps.VertexMain().ResolveInput(ir.SemanticPosition, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if t.outPos, err = ps.VertexMain().ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4); err != nil {
		return err
	}
	t.wvp, err = ps.Vertex().ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix4, 0)
	return err
}

func (t *transformSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	return nil
}

func (t *transformSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	ps.VertexMain().AddAtom(ir.NewBinaryOp(OrderTransform.Group(), ir.OpMultiply,
		ir.Out(t.outPos), ir.In(t.wvp), ir.In(t.position)))
	return nil
}

// transformFactory produces transform modules. The transform module carries no
// script surface; fixed-function coverage adds it automatically.
type transformFactory struct{}

var _ Factory = &transformFactory{}

// NewTransformFactory creates the factory for the transform module.
//
// Returns:
//   - Factory: the new factory
func NewTransformFactory() Factory {
	return &transformFactory{}
}

func (f *transformFactory) Type() string {
	return TypeTransform
}

func (f *transformFactory) Create() SubRenderState {
	return NewTransform()
}

func (f *transformFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	return nil, false
}
