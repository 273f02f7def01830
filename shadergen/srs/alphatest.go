package srs

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypeAlphaTest is the type tag of the alpha rejection module.
const TypeAlphaTest = "alpha_test"

// alphaTestSRS emits the fragment alpha rejection test against the pass's
// alpha reject threshold, delivered each draw through an auto-constant.
type alphaTestSRS struct {
	threshold ir.Parameter
	psCol     ir.Parameter
	psOut     ir.Parameter
}

var _ SubRenderState = &alphaTestSRS{}

// NewAlphaTest creates the alpha rejection module.
//
// Returns:
//   - SubRenderState: the new module
func NewAlphaTest() SubRenderState {
	return &alphaTestSRS{}
}

func (a *alphaTestSRS) Type() string {
	return TypeAlphaTest
}

func (a *alphaTestSRS) ExecutionOrder() ExecutionOrder {
	return OrderPostProcess
}

func (a *alphaTestSRS) CopyFrom(other SubRenderState) {
	// Stateless; the threshold flows through the auto-constant binding.
}

func (a *alphaTestSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	return srcPass.AlphaRejectEnabled()
}

func (a *alphaTestSRS) ResolveParameters(ps *ir.ProgramSet) error {
	var err error
	if a.threshold, err = ps.Pixel().ResolveAutoUniform(ir.AutoAlphaRejectValue, 0, ir.TypeFloat, 0); err != nil {
		return err
	}
	if a.psCol, err = ps.PixelMain().ResolveLocal(localColour, ir.TypeFloat4); err != nil {
		return err
	}
	a.psOut, err = ps.PixelMain().ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	return err
}

func (a *alphaTestSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	ps.Pixel().AddDependency(DepAlphaTest)
	return nil
}

func (a *alphaTestSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	group := OrderPostProcess.Group()
	pixel := ps.PixelMain()
	pixel.AddAtom(ir.NewInvocation(FuncAlphaTest, group,
		ir.In(a.threshold), ir.In(a.psCol)))
	pixel.AddAtom(ir.NewAssignment(group, ir.Out(a.psOut), ir.In(a.psCol)))
	return nil
}

// alphaTestFactory produces alpha rejection modules.
type alphaTestFactory struct{}

var _ Factory = &alphaTestFactory{}

// NewAlphaTestFactory creates the factory for the alpha rejection module.
//
// Returns:
//   - Factory: the new factory
func NewAlphaTestFactory() Factory {
	return &alphaTestFactory{}
}

func (f *alphaTestFactory) Type() string {
	return TypeAlphaTest
}

func (f *alphaTestFactory) Create() SubRenderState {
	return NewAlphaTest()
}

func (f *alphaTestFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	return nil, false
}
