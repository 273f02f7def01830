// writer.go defines the program writer contract and the language-tag registry.
// A writer serializes one stage Program of the IR into target-language source
// text; the registry maps language tags to writers and is the only place the
// generator consults when the target language changes. Writers are pluggable:
// hosts may register their own emitters under new tags at any time.
package writer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// ErrUnsupportedLanguage is returned when no writer is registered for a
// requested language tag.
var ErrUnsupportedLanguage = errors.New("writer: unsupported target language")

// ErrUnknownDependency is returned when a program declares a helper-library
// dependency the writer has no source for.
var ErrUnknownDependency = errors.New("writer: unknown helper library dependency")

// ErrUnknownAtom is returned when a program contains an atom kind the writer
// cannot serialize.
var ErrUnknownAtom = errors.New("writer: unknown atom kind")

// Writer serializes stage programs to source text for one target language.
type Writer interface {
	// Language retrieves the language tag this writer serves.
	//
	// Returns:
	//   - string: the language tag (e.g. "glsl", "hlsl", "wgsl")
	Language() string

	// Write serializes a stage program to source text. The output must be
	// canonical: identical programs serialize to byte-identical text, which
	// is what makes the content fingerprint stable.
	//
	// Parameters:
	//   - p: the stage program to serialize
	//
	// Returns:
	//   - string: the generated source text
	//   - error: ErrUnknownDependency or ErrUnknownAtom on emission failure
	Write(p ir.Program) (string, error)
}

// Registry maps language tags to writers. Registering a tag that already has
// a writer replaces it, which lets hosts override the built-in emitters.
type Registry struct {
	byTag map[string]Writer
}

// NewRegistry creates a registry pre-populated with the built-in writers:
// the GLSL family (glsl, glsles, glslang), hlsl, wgsl, and the null writer.
//
// Returns:
//   - *Registry: the populated registry
func NewRegistry() *Registry {
	r := &Registry{byTag: make(map[string]Writer)}
	r.Register(NewGLSLWriter(DialectGLSL))
	r.Register(NewGLSLWriter(DialectGLSLES))
	r.Register(NewGLSLWriter(DialectGLSLang))
	r.Register(NewHLSLWriter())
	r.Register(NewWGSLWriter())
	r.Register(NewNullWriter())
	return r
}

// Register installs a writer under its language tag, replacing any existing
// writer for the tag.
//
// Parameters:
//   - w: the writer to install
func (r *Registry) Register(w Writer) {
	r.byTag[w.Language()] = w
}

// ForLanguage retrieves the writer for a language tag.
//
// Parameters:
//   - tag: the language tag
//
// Returns:
//   - Writer: the registered writer
//   - error: ErrUnsupportedLanguage when the tag has no writer
func (r *Registry) ForLanguage(tag string) (Writer, error) {
	w, exists := r.byTag[tag]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}
	return w, nil
}

// Languages retrieves the registered language tags in sorted order.
//
// Returns:
//   - []string: the tags
func (r *Registry) Languages() []string {
	tags := make([]string, 0, len(r.byTag))
	for tag := range r.byTag {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// operandRenderer turns one operand into target-language text. Each writer
// supplies its own to account for input/output struct prefixes and sampler
// pair expansion.
type operandRenderer func(op ir.Operand) string

// writeAtoms serializes a function's atoms in emission order. render produces
// expression text; renderArg produces call-argument text, which differs in
// languages that pass write operands by pointer or expand sampler pairs.
// Shared by the built-in writers so statement shape stays canonical across
// languages.
func writeAtoms(sb *strings.Builder, fn ir.Function, render, renderArg operandRenderer, indent string) error {
	for _, atom := range fn.Atoms() {
		switch a := atom.(type) {
		case *ir.Assignment:
			dst := render(a.Dst())
			args := a.Args()
			if a.Op() == ir.OpAssign {
				fmt.Fprintf(sb, "%s%s = %s;\n", indent, dst, render(args[0]))
			} else {
				fmt.Fprintf(sb, "%s%s = %s %s %s;\n", indent, dst, render(args[0]), a.Op().Token(), render(args[1]))
			}
		case *ir.Invocation:
			rendered := make([]string, 0, len(a.Operands()))
			for _, op := range a.Operands() {
				rendered = append(rendered, renderArg(op))
			}
			fmt.Fprintf(sb, "%s%s(%s);\n", indent, a.Name(), strings.Join(rendered, ", "))
		default:
			return fmt.Errorf("%w: %T", ErrUnknownAtom, atom)
		}
	}
	return nil
}

// interpolantLocation assigns the deterministic interface location for an
// interpolant parameter. The mapping depends only on (semantic, index) so the
// vertex and pixel stages, written independently, always agree.
func interpolantLocation(p ir.Parameter) int {
	switch p.Semantic() {
	case ir.SemanticColour:
		return p.Index()
	case ir.SemanticNormal:
		return 2
	case ir.SemanticTangent:
		return 3
	case ir.SemanticBinormal:
		return 4
	case ir.SemanticUser:
		return 5 + p.Index()
	case ir.SemanticTexCoord:
		return 8 + p.Index()
	default:
		return 15
	}
}

// boneCountConstant returns the bone palette size when the program carries the
// auto-bound bone matrix array, or 0. Writers surface it as a compile-time
// constant so the skinning helpers can size their array parameters.
func boneCountConstant(p ir.Program) int {
	for _, u := range p.Uniforms() {
		if ab := u.AutoBinding(); ab != nil && ab.Tag == ir.AutoBoneMatrixArray {
			return u.ArraySize()
		}
	}
	return 0
}

// constantLiteral renders a ClassConstant parameter with a language-specific
// vector constructor.
func constantLiteral(p ir.Parameter, vec4Ctor string) string {
	vals := p.ConstantValues()
	if len(vals) == 1 {
		return fmt.Sprintf("%g", vals[0])
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%s(%s)", vec4Ctor, strings.Join(parts, ", "))
}
