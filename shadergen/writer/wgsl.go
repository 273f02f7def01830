package writer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// wgslWriter is the implementation of the Writer interface for WGSL output.
// Uniforms become individual module-scope var<uniform> declarations in group 0;
// each sampler expands to a texture/sampler binding pair in group 1. Varyings
// travel in input/output structs and write operands pass to helper functions
// by pointer, which is the only out-parameter shape WGSL has.
type wgslWriter struct{}

var _ Writer = &wgslWriter{}

// NewWGSLWriter creates the WGSL writer.
//
// Returns:
//   - Writer: the new writer
func NewWGSLWriter() Writer {
	return &wgslWriter{}
}

func (w *wgslWriter) Language() string {
	return "wgsl"
}

func (w *wgslWriter) Write(p ir.Program) (string, error) {
	var sb strings.Builder

	if bones := boneCountConstant(p); bones > 0 {
		fmt.Fprintf(&sb, "const SG_BONE_COUNT : u32 = %du;\n\n", bones)
	}

	for i, u := range p.Uniforms() {
		typ := wgslType(u.Type())
		if u.ArraySize() > 0 {
			if ab := u.AutoBinding(); ab != nil && ab.Tag == ir.AutoBoneMatrixArray {
				typ = fmt.Sprintf("array<%s, SG_BONE_COUNT>", typ)
			} else {
				typ = fmt.Sprintf("array<%s, %d>", typ, u.ArraySize())
			}
		}
		fmt.Fprintf(&sb, "@group(0) @binding(%d) var<uniform> %s : %s;\n", i, u.Name(), typ)
	}
	for _, s := range p.Samplers() {
		fmt.Fprintf(&sb, "@group(1) @binding(%d) var %s_t : %s;\n", s.Binding()*2, s.Name(), wgslTextureType(s.Type()))
		fmt.Fprintf(&sb, "@group(1) @binding(%d) var %s_s : sampler;\n", s.Binding()*2+1, s.Name())
	}
	sb.WriteByte('\n')

	for _, dep := range p.Dependencies() {
		lib, exists := wgslLibs[dep]
		if !exists {
			return "", fmt.Errorf("%w: %q for language %q", ErrUnknownDependency, dep, w.Language())
		}
		sb.WriteString(lib)
		sb.WriteByte('\n')
	}

	main := p.Main()
	inStruct, outStruct, entryAttr := "VertexInput", "VertexOutput", "@vertex"
	if p.Stage() == ir.StagePixel {
		inStruct, outStruct, entryAttr = "FragmentInput", "FragmentOutput", "@fragment"
	}

	fmt.Fprintf(&sb, "struct %s {\n", inStruct)
	for i, in := range main.Inputs() {
		fmt.Fprintf(&sb, "\t%s %s : %s,\n", w.ioAttribute(p.Stage(), true, i, in), in.Name(), wgslType(in.Type()))
	}
	fmt.Fprintf(&sb, "}\n\nstruct %s {\n", outStruct)
	for i, out := range main.Outputs() {
		fmt.Fprintf(&sb, "\t%s %s : %s,\n", w.ioAttribute(p.Stage(), false, i, out), out.Name(), wgslType(out.Type()))
	}
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "%s\nfn main(input : %s) -> %s {\n", entryAttr, inStruct, outStruct)
	fmt.Fprintf(&sb, "\tvar output : %s;\n", outStruct)
	for _, l := range main.Locals() {
		fmt.Fprintf(&sb, "\tvar %s : %s;\n", l.Name(), wgslType(l.Type()))
	}
	render := func(op ir.Operand) string {
		return w.renderOperand(op)
	}
	renderArg := func(op ir.Operand) string {
		return w.renderArg(op)
	}
	if err := writeAtoms(&sb, main, render, renderArg, "\t"); err != nil {
		return "", err
	}
	sb.WriteString("\treturn output;\n}\n")
	return sb.String(), nil
}

// ioAttribute declares the interface attribute for one struct member. The
// vertex position output and the fragment position input carry
// @builtin(position); interpolants use the shared location mapping so the two
// stages agree even when the fragment consumes a subset.
func (w *wgslWriter) ioAttribute(stage ir.Stage, isInput bool, ordinal int, p ir.Parameter) string {
	position := p.Semantic() == ir.SemanticPosition && p.Index() == 0
	if stage == ir.StageVertex {
		if isInput {
			return fmt.Sprintf("@location(%d)", ordinal)
		}
		if position {
			return "@builtin(position)"
		}
		return fmt.Sprintf("@location(%d)", interpolantLocation(p))
	}
	if isInput {
		if position {
			return "@builtin(position)"
		}
		return fmt.Sprintf("@location(%d)", interpolantLocation(p))
	}
	return fmt.Sprintf("@location(%d)", p.Index())
}

func (w *wgslWriter) renderOperand(op ir.Operand) string {
	p := op.Param
	switch p.Class() {
	case ir.ClassConstant:
		return constantLiteral(p, wgslType(p.Type()))
	case ir.ClassVertexInput:
		return "input." + p.Name() + op.Mask.Swizzle()
	case ir.ClassInterpolant:
		if op.Usage == ir.UsageRead {
			return "input." + p.Name() + op.Mask.Swizzle()
		}
		return "output." + p.Name() + op.Mask.Swizzle()
	case ir.ClassPixelOutput:
		return "output." + p.Name() + op.Mask.Swizzle()
	default:
		return p.Name() + op.Mask.Swizzle()
	}
}

// renderArg renders a call argument. Samplers expand to their texture/sampler
// pair; write and read-write operands pass by pointer; the bone palette passes
// as a uniform-space pointer so the helper can index it in place.
func (w *wgslWriter) renderArg(op ir.Operand) string {
	p := op.Param
	if p.Class() == ir.ClassSampler {
		return p.Name() + "_t, " + p.Name() + "_s"
	}
	if p.Class() == ir.ClassUniform && p.ArraySize() > 0 {
		return "&" + p.Name()
	}
	if op.Usage == ir.UsageWrite || op.Usage == ir.UsageReadWrite {
		return "&" + w.renderOperand(op)
	}
	return w.renderOperand(op)
}

// wgslType maps an IR type to WGSL syntax.
func wgslType(t ir.GpuType) string {
	switch t {
	case ir.TypeFloat:
		return "f32"
	case ir.TypeFloat2:
		return "vec2<f32>"
	case ir.TypeFloat3:
		return "vec3<f32>"
	case ir.TypeFloat4:
		return "vec4<f32>"
	case ir.TypeMatrix3:
		return "mat3x3<f32>"
	case ir.TypeMatrix4:
		return "mat4x4<f32>"
	case ir.TypeMatrix3x4:
		return "mat3x4<f32>"
	case ir.TypeInt:
		return "i32"
	case ir.TypeInt4:
		return "vec4<i32>"
	case ir.TypeUInt:
		return "u32"
	default:
		return "f32"
	}
}

// wgslTextureType maps an IR sampler type to the WGSL texture type.
func wgslTextureType(t ir.GpuType) string {
	switch t {
	case ir.TypeSampler1D:
		return "texture_1d<f32>"
	case ir.TypeSampler3D:
		return "texture_3d<f32>"
	case ir.TypeSamplerCube:
		return "texture_cube<f32>"
	case ir.TypeSampler2DArray:
		return "texture_2d_array<f32>"
	default:
		return "texture_2d<f32>"
	}
}
