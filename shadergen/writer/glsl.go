package writer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// GLSLDialect selects one member of the GLSL writer family. The emission shape
// is shared; dialects differ in the version header, precision statements, and
// layout qualifiers.
type GLSLDialect string

const (
	// DialectGLSL targets desktop OpenGL (GLSL 3.30 core).
	DialectGLSL GLSLDialect = "glsl"

	// DialectGLSLES targets OpenGL ES 3.0 (GLSL ES 3.00).
	DialectGLSLES GLSLDialect = "glsles"

	// DialectGLSLang targets Vulkan-style GLSL (4.50) consumed by a
	// SPIR-V-producing frontend.
	DialectGLSLang GLSLDialect = "glslang"
)

// glslWriter is the implementation of the Writer interface for the GLSL family.
type glslWriter struct {
	dialect GLSLDialect
}

var _ Writer = &glslWriter{}

// NewGLSLWriter creates a writer for one GLSL dialect.
//
// Parameters:
//   - dialect: the GLSL family member to target
//
// Returns:
//   - Writer: the new writer
func NewGLSLWriter(dialect GLSLDialect) Writer {
	return &glslWriter{dialect: dialect}
}

func (w *glslWriter) Language() string {
	return string(w.dialect)
}

func (w *glslWriter) Write(p ir.Program) (string, error) {
	var sb strings.Builder

	switch w.dialect {
	case DialectGLSLES:
		sb.WriteString("#version 300 es\n")
		sb.WriteString("precision highp float;\n")
	case DialectGLSLang:
		sb.WriteString("#version 450\n")
	default:
		sb.WriteString("#version 330 core\n")
	}
	sb.WriteByte('\n')

	if bones := boneCountConstant(p); bones > 0 {
		fmt.Fprintf(&sb, "#define SG_BONE_COUNT %d\n\n", bones)
	}

	for _, u := range p.Uniforms() {
		if u.ArraySize() > 0 {
			fmt.Fprintf(&sb, "uniform %s %s[%d];\n", glslType(u.Type()), u.Name(), u.ArraySize())
		} else {
			fmt.Fprintf(&sb, "uniform %s %s;\n", glslType(u.Type()), u.Name())
		}
	}
	for _, s := range p.Samplers() {
		if w.dialect == DialectGLSLang {
			fmt.Fprintf(&sb, "layout(binding = %d) uniform %s %s;\n", s.Binding(), glslType(s.Type()), s.Name())
		} else {
			fmt.Fprintf(&sb, "uniform %s %s;\n", glslType(s.Type()), s.Name())
		}
	}

	main := p.Main()
	for i, in := range main.Inputs() {
		w.writeVarying(&sb, "in", i, in)
	}
	for i, out := range main.Outputs() {
		// The clip-space position maps to gl_Position and is never declared.
		if p.Stage() == ir.StageVertex && out.Semantic() == ir.SemanticPosition && out.Index() == 0 {
			continue
		}
		w.writeVarying(&sb, "out", i, out)
	}
	sb.WriteByte('\n')

	for _, dep := range p.Dependencies() {
		lib, exists := glslLibs[dep]
		if !exists {
			return "", fmt.Errorf("%w: %q for language %q", ErrUnknownDependency, dep, w.dialect)
		}
		sb.WriteString(lib)
		sb.WriteByte('\n')
	}

	sb.WriteString("void main() {\n")
	for _, l := range main.Locals() {
		fmt.Fprintf(&sb, "\t%s %s;\n", glslType(l.Type()), l.Name())
	}
	render := func(op ir.Operand) string {
		return w.renderOperand(p.Stage(), op)
	}
	if err := writeAtoms(&sb, main, render, render, "\t"); err != nil {
		return "", err
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

// writeVarying declares one input or output. glslang emits explicit locations
// so the SPIR-V frontend never has to infer an interface layout. Interpolants
// use the shared (semantic, index) location mapping so both stages agree even
// when the pixel program consumes a subset of the vertex outputs.
func (w *glslWriter) writeVarying(sb *strings.Builder, qualifier string, ordinal int, p ir.Parameter) {
	if w.dialect == DialectGLSLang {
		location := ordinal
		if p.Class() == ir.ClassInterpolant {
			location = interpolantLocation(p)
		}
		fmt.Fprintf(sb, "layout(location = %d) %s %s %s;\n", location, qualifier, glslType(p.Type()), p.Name())
		return
	}
	fmt.Fprintf(sb, "%s %s %s;\n", qualifier, glslType(p.Type()), p.Name())
}

func (w *glslWriter) renderOperand(stage ir.Stage, op ir.Operand) string {
	p := op.Param
	if p.Class() == ir.ClassConstant {
		return constantLiteral(p, glslType(p.Type()))
	}
	name := p.Name()
	if stage == ir.StageVertex && p.Class() == ir.ClassInterpolant &&
		p.Semantic() == ir.SemanticPosition && p.Index() == 0 {
		name = "gl_Position"
	}
	return name + op.Mask.Swizzle()
}

// glslType maps an IR type to GLSL syntax.
func glslType(t ir.GpuType) string {
	switch t {
	case ir.TypeFloat:
		return "float"
	case ir.TypeFloat2:
		return "vec2"
	case ir.TypeFloat3:
		return "vec3"
	case ir.TypeFloat4:
		return "vec4"
	case ir.TypeMatrix3:
		return "mat3"
	case ir.TypeMatrix4:
		return "mat4"
	case ir.TypeMatrix3x4:
		return "mat3x4"
	case ir.TypeInt:
		return "int"
	case ir.TypeInt4:
		return "ivec4"
	case ir.TypeUInt:
		return "uint"
	case ir.TypeSampler1D:
		return "sampler1D"
	case ir.TypeSampler2D:
		return "sampler2D"
	case ir.TypeSampler3D:
		return "sampler3D"
	case ir.TypeSamplerCube:
		return "samplerCube"
	case ir.TypeSampler2DShadow:
		return "sampler2DShadow"
	case ir.TypeSampler2DArray:
		return "sampler2DArray"
	default:
		return "void"
	}
}
