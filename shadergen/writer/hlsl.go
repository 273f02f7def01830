package writer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// hlslWriter is the implementation of the Writer interface for HLSL shader
// model 5 output. Varyings travel in VS_INPUT/VS_OUTPUT/PS_INPUT/PS_OUTPUT
// structs; interpolants carry TEXCOORD semantics from the shared location
// mapping so both stages agree on the interface.
type hlslWriter struct{}

var _ Writer = &hlslWriter{}

// NewHLSLWriter creates the HLSL writer.
//
// Returns:
//   - Writer: the new writer
func NewHLSLWriter() Writer {
	return &hlslWriter{}
}

func (w *hlslWriter) Language() string {
	return "hlsl"
}

func (w *hlslWriter) Write(p ir.Program) (string, error) {
	var sb strings.Builder

	if bones := boneCountConstant(p); bones > 0 {
		fmt.Fprintf(&sb, "#define SG_BONE_COUNT %d\n\n", bones)
	}

	if uniforms := p.Uniforms(); len(uniforms) > 0 {
		sb.WriteString("cbuffer SGParams : register(b0) {\n")
		for _, u := range uniforms {
			if u.ArraySize() > 0 {
				fmt.Fprintf(&sb, "\t%s %s[%d];\n", hlslType(u.Type()), u.Name(), u.ArraySize())
			} else {
				fmt.Fprintf(&sb, "\t%s %s;\n", hlslType(u.Type()), u.Name())
			}
		}
		sb.WriteString("};\n")
	}
	for _, s := range p.Samplers() {
		fmt.Fprintf(&sb, "%s %sTex : register(t%d);\n", hlslTextureType(s.Type()), s.Name(), s.Binding())
		fmt.Fprintf(&sb, "SamplerState %sSmp : register(s%d);\n", s.Name(), s.Binding())
	}
	sb.WriteByte('\n')

	for _, dep := range p.Dependencies() {
		lib, exists := hlslLibs[dep]
		if !exists {
			return "", fmt.Errorf("%w: %q for language %q", ErrUnknownDependency, dep, w.Language())
		}
		sb.WriteString(lib)
		sb.WriteByte('\n')
	}

	main := p.Main()
	inStruct, outStruct := "VS_INPUT", "VS_OUTPUT"
	if p.Stage() == ir.StagePixel {
		inStruct, outStruct = "PS_INPUT", "PS_OUTPUT"
	}

	fmt.Fprintf(&sb, "struct %s {\n", inStruct)
	for i, in := range main.Inputs() {
		fmt.Fprintf(&sb, "\t%s %s : %s;\n", hlslType(in.Type()), in.Name(), w.inputSemantic(p.Stage(), i, in))
	}
	fmt.Fprintf(&sb, "};\n\nstruct %s {\n", outStruct)
	for i, out := range main.Outputs() {
		fmt.Fprintf(&sb, "\t%s %s : %s;\n", hlslType(out.Type()), out.Name(), w.outputSemantic(p.Stage(), i, out))
	}
	sb.WriteString("};\n\n")

	fmt.Fprintf(&sb, "%s main(%s input) {\n", outStruct, inStruct)
	fmt.Fprintf(&sb, "\t%s output = (%s)0;\n", outStruct, outStruct)
	for _, l := range main.Locals() {
		fmt.Fprintf(&sb, "\t%s %s;\n", hlslType(l.Type()), l.Name())
	}
	if err := w.writeAtoms(&sb, main); err != nil {
		return "", err
	}
	sb.WriteString("\treturn output;\n}\n")
	return sb.String(), nil
}

// writeAtoms is the HLSL-specific atom serializer. It exists apart from the
// shared one because HLSL matrix products use mul() rather than the *
// operator, and sampler operands expand to a texture/sampler argument pair.
func (w *hlslWriter) writeAtoms(sb *strings.Builder, fn ir.Function) error {
	for _, atom := range fn.Atoms() {
		switch a := atom.(type) {
		case *ir.Assignment:
			dst := w.renderOperand(a.Dst())
			args := a.Args()
			if a.Op() == ir.OpAssign {
				fmt.Fprintf(sb, "\t%s = %s;\n", dst, w.renderOperand(args[0]))
			} else if a.Op() == ir.OpMultiply && (args[0].Param.Type().IsMatrix() || args[1].Param.Type().IsMatrix()) {
				fmt.Fprintf(sb, "\t%s = mul(%s, %s);\n", dst, w.renderOperand(args[0]), w.renderOperand(args[1]))
			} else {
				fmt.Fprintf(sb, "\t%s = %s %s %s;\n", dst, w.renderOperand(args[0]), a.Op().Token(), w.renderOperand(args[1]))
			}
		case *ir.Invocation:
			rendered := make([]string, 0, len(a.Operands()))
			for _, op := range a.Operands() {
				if op.Param.Class() == ir.ClassSampler {
					rendered = append(rendered, op.Param.Name()+"Tex, "+op.Param.Name()+"Smp")
					continue
				}
				rendered = append(rendered, w.renderOperand(op))
			}
			fmt.Fprintf(sb, "\t%s(%s);\n", a.Name(), strings.Join(rendered, ", "))
		default:
			return fmt.Errorf("%w: %T", ErrUnknownAtom, atom)
		}
	}
	return nil
}

func (w *hlslWriter) renderOperand(op ir.Operand) string {
	p := op.Param
	switch p.Class() {
	case ir.ClassConstant:
		return constantLiteral(p, hlslType(p.Type()))
	case ir.ClassVertexInput:
		return "input." + p.Name() + op.Mask.Swizzle()
	case ir.ClassInterpolant:
		// Vertex writes interpolants through the output struct; the pixel
		// stage reads them back from its input struct.
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

func (w *hlslWriter) inputSemantic(stage ir.Stage, ordinal int, p ir.Parameter) string {
	if stage == ir.StagePixel {
		if p.Semantic() == ir.SemanticPosition && p.Index() == 0 {
			return "SV_POSITION"
		}
		return fmt.Sprintf("TEXCOORD%d", interpolantLocation(p))
	}
	switch p.Semantic() {
	case ir.SemanticPosition:
		return "POSITION"
	case ir.SemanticNormal:
		return "NORMAL"
	case ir.SemanticColour:
		return fmt.Sprintf("COLOR%d", p.Index())
	case ir.SemanticTexCoord:
		return fmt.Sprintf("TEXCOORD%d", p.Index())
	case ir.SemanticBlendWeights:
		return "BLENDWEIGHT"
	case ir.SemanticBlendIndices:
		return "BLENDINDICES"
	case ir.SemanticTangent:
		return "TANGENT"
	case ir.SemanticBinormal:
		return "BINORMAL"
	default:
		return fmt.Sprintf("TEXCOORD%d", 8+ordinal)
	}
}

func (w *hlslWriter) outputSemantic(stage ir.Stage, ordinal int, p ir.Parameter) string {
	if stage == ir.StagePixel {
		return fmt.Sprintf("SV_TARGET%d", p.Index())
	}
	if p.Semantic() == ir.SemanticPosition && p.Index() == 0 {
		return "SV_POSITION"
	}
	return fmt.Sprintf("TEXCOORD%d", interpolantLocation(p))
}

// hlslType maps an IR type to HLSL syntax.
func hlslType(t ir.GpuType) string {
	switch t {
	case ir.TypeFloat:
		return "float"
	case ir.TypeFloat2:
		return "float2"
	case ir.TypeFloat3:
		return "float3"
	case ir.TypeFloat4:
		return "float4"
	case ir.TypeMatrix3:
		return "float3x3"
	case ir.TypeMatrix4:
		return "float4x4"
	case ir.TypeMatrix3x4:
		return "float3x4"
	case ir.TypeInt:
		return "int"
	case ir.TypeInt4:
		return "int4"
	case ir.TypeUInt:
		return "uint"
	default:
		return "void"
	}
}

// hlslTextureType maps an IR sampler type to the HLSL texture object type.
func hlslTextureType(t ir.GpuType) string {
	switch t {
	case ir.TypeSampler1D:
		return "Texture1D"
	case ir.TypeSampler3D:
		return "Texture3D"
	case ir.TypeSamplerCube:
		return "TextureCube"
	case ir.TypeSampler2DArray:
		return "Texture2DArray"
	default:
		return "Texture2D"
	}
}
