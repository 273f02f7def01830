package ir

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInterpolantMismatch is returned by Link when a pixel-stage input has no
// matching vertex-stage output of identical semantic and type.
var ErrInterpolantMismatch = errors.New("ir: interpolant mismatch between stages")

// ErrInterpolantBudget is returned by Link when the vertex-stage output
// footprint exceeds the host-declared component limit.
var ErrInterpolantBudget = errors.New("ir: interpolant footprint exceeds limit")

// CompactionPolicy is the linker hint for how aggressively the vertex-stage
// output set is packed before the footprint check.
type CompactionPolicy int

const (
	// CompactLow leaves interpolant indices exactly as the effect modules requested them.
	CompactLow CompactionPolicy = iota

	// CompactMedium densely re-indexes texture coordinate interpolants.
	CompactMedium

	// CompactHigh behaves as CompactMedium; reserved for tighter packing strategies.
	CompactHigh
)

// program is the implementation of the Program interface.
type program struct {
	stage        Stage
	entry        *function
	uniforms     []*parameter
	samplerSeq   int
	dependencies []string
}

// Program is the IR of one pipeline stage prior to target-language emission:
// the stage's entry function plus the uniforms, samplers, and helper-function
// dependencies the emitted source must declare. Programs own their parameters;
// a resolve call with an identical key always returns the same Parameter.
type Program interface {
	// Stage retrieves the pipeline stage this program targets.
	//
	// Returns:
	//   - Stage: StageVertex or StagePixel
	Stage() Stage

	// Main retrieves the stage entry function.
	//
	// Returns:
	//   - Function: the entry function atoms are emitted into
	Main() Function

	// ResolveUniform returns the named uniform, allocating it on first use.
	// Uniform names are unique within the program.
	//
	// Parameters:
	//   - name: the uniform name
	//   - typ: the required GPU type
	//   - arraySize: array length, or 0 for a scalar declaration
	//
	// Returns:
	//   - Parameter: the canonical uniform for the name
	//   - error: ErrResolveConflict if the name exists with a different type or size
	ResolveUniform(name string, typ GpuType, arraySize int) (Parameter, error)

	// ResolveAutoUniform returns the uniform bound to the host's
	// auto-parameter source for the given tag and payload, allocating it on
	// first use. The (tag, data) pair is the canonical key.
	//
	// Parameters:
	//   - tag: the auto-constant tag
	//   - data: the tag's integer payload (e.g. light index)
	//   - typ: the required GPU type
	//   - arraySize: array length, or 0 for a scalar declaration
	//
	// Returns:
	//   - Parameter: the canonical auto-bound uniform for the key
	//   - error: ErrResolveConflict if the key exists with a different type or size
	ResolveAutoUniform(tag AutoConstant, data uint32, typ GpuType, arraySize int) (Parameter, error)

	// ResolveSampler returns the named sampler, allocating it with the next
	// free binding slot on first use.
	//
	// Parameters:
	//   - name: the sampler name
	//   - typ: the sampler kind (one of the TypeSampler* values)
	//
	// Returns:
	//   - Parameter: the canonical sampler for the name
	//   - error: ErrResolveConflict if the name exists with a different kind
	ResolveSampler(name string, typ GpuType) (Parameter, error)

	// AddDependency records a helper-function or builtin-include dependency
	// the writer must pull into the emitted source. Duplicates are ignored;
	// first-add order is preserved.
	//
	// Parameters:
	//   - name: the dependency identifier known to the writers
	AddDependency(name string)

	// Uniforms retrieves the program's uniforms (excluding samplers) in
	// allocation order.
	//
	// Returns:
	//   - []Parameter: the uniform parameters
	Uniforms() []Parameter

	// Samplers retrieves the program's samplers in binding-slot order.
	//
	// Returns:
	//   - []Parameter: the sampler parameters
	Samplers() []Parameter

	// Dependencies retrieves the recorded dependencies in first-add order.
	//
	// Returns:
	//   - []string: the dependency identifiers
	Dependencies() []string

	// LayoutString builds the canonical uniform/sampler layout description
	// folded into the program fingerprint.
	//
	// Returns:
	//   - string: one line per uniform and sampler, in allocation order
	LayoutString() string
}

var _ Program = &program{}

func newProgram(stage Stage) *program {
	return &program{
		stage: stage,
		entry: newFunction("main", stage),
	}
}

func (p *program) Stage() Stage {
	return p.stage
}

func (p *program) Main() Function {
	return p.entry
}

func (p *program) ResolveUniform(name string, typ GpuType, arraySize int) (Parameter, error) {
	for _, u := range p.uniforms {
		if u.name == name {
			if u.typ != typ || u.arraySize != arraySize {
				return nil, fmt.Errorf("%w: uniform %q is %s[%d], requested %s[%d]",
					ErrResolveConflict, name, u.typ, u.arraySize, typ, arraySize)
			}
			return u, nil
		}
	}
	u := &parameter{name: name, typ: typ, semantic: SemanticUnknown, class: ClassUniform, arraySize: arraySize, binding: -1}
	p.uniforms = append(p.uniforms, u)
	return u, nil
}

func (p *program) ResolveAutoUniform(tag AutoConstant, data uint32, typ GpuType, arraySize int) (Parameter, error) {
	for _, u := range p.uniforms {
		if u.auto != nil && u.auto.Tag == tag && u.auto.Data == data {
			if u.typ != typ || u.arraySize != arraySize {
				return nil, fmt.Errorf("%w: auto uniform %s(%d) is %s[%d], requested %s[%d]",
					ErrResolveConflict, tag, data, u.typ, u.arraySize, typ, arraySize)
			}
			return u, nil
		}
	}
	u := &parameter{
		name:      autoUniformName(tag, data),
		typ:       typ,
		semantic:  SemanticUnknown,
		class:     ClassUniform,
		arraySize: arraySize,
		auto:      &AutoBinding{Tag: tag, Data: data},
		binding:   -1,
	}
	p.uniforms = append(p.uniforms, u)
	return u, nil
}

func (p *program) ResolveSampler(name string, typ GpuType) (Parameter, error) {
	if !typ.IsSampler() {
		return nil, fmt.Errorf("%w: %q: %s is not a sampler kind", ErrResolveConflict, name, typ)
	}
	for _, u := range p.uniforms {
		if u.name == name && u.class == ClassSampler {
			if u.typ != typ {
				return nil, fmt.Errorf("%w: sampler %q is %s, requested %s", ErrResolveConflict, name, u.typ, typ)
			}
			return u, nil
		}
	}
	u := &parameter{name: name, typ: typ, semantic: SemanticUnknown, class: ClassSampler, binding: p.samplerSeq}
	p.samplerSeq++
	p.uniforms = append(p.uniforms, u)
	return u, nil
}

func (p *program) AddDependency(name string) {
	if slices.Contains(p.dependencies, name) {
		return
	}
	p.dependencies = append(p.dependencies, name)
}

func (p *program) Uniforms() []Parameter {
	out := make([]Parameter, 0, len(p.uniforms))
	for _, u := range p.uniforms {
		if u.class == ClassUniform {
			out = append(out, u)
		}
	}
	return out
}

func (p *program) Samplers() []Parameter {
	out := make([]Parameter, 0, len(p.uniforms))
	for _, u := range p.uniforms {
		if u.class == ClassSampler {
			out = append(out, u)
		}
	}
	return out
}

func (p *program) Dependencies() []string {
	return p.dependencies
}

func (p *program) LayoutString() string {
	var sb strings.Builder
	for _, u := range p.uniforms {
		if u.class == ClassSampler {
			fmt.Fprintf(&sb, "%s@%d\n", u.layoutKey(), u.binding)
			continue
		}
		sb.WriteString(u.layoutKey())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ProgramSet is the vertex/pixel Program bundle built for one destination
// pass. Effect modules receive the set during the three resolve/emit phases
// and the linker validates cross-stage coherence afterwards.
type ProgramSet struct {
	vertex *program
	pixel  *program
}

// NewProgramSet creates an empty vertex + pixel program bundle with fresh
// stage entry functions.
//
// Returns:
//   - *ProgramSet: the new bundle
func NewProgramSet() *ProgramSet {
	return &ProgramSet{
		vertex: newProgram(StageVertex),
		pixel:  newProgram(StagePixel),
	}
}

// Vertex retrieves the vertex-stage program.
//
// Returns:
//   - Program: the vertex program
func (ps *ProgramSet) Vertex() Program {
	return ps.vertex
}

// Pixel retrieves the pixel-stage program.
//
// Returns:
//   - Program: the pixel program
func (ps *ProgramSet) Pixel() Program {
	return ps.pixel
}

// VertexMain retrieves the vertex-stage entry function.
//
// Returns:
//   - Function: the vertex main
func (ps *ProgramSet) VertexMain() Function {
	return ps.vertex.entry
}

// PixelMain retrieves the pixel-stage entry function.
//
// Returns:
//   - Function: the pixel main
func (ps *ProgramSet) PixelMain() Function {
	return ps.pixel.entry
}

// Link validates cross-stage coherence and packs the interpolant set. Every
// pixel-stage input interpolant must have a vertex-stage output with the same
// semantic, index, and type; under CompactMedium and above, texture coordinate
// interpolants are densely re-indexed in both stages before the footprint is
// checked against the component limit. The clip-space position output is
// excluded from the footprint because the writers map it to the stage builtin.
//
// Parameters:
//   - policy: the output compaction policy
//   - maxComponents: the host-declared interpolant component limit (0 = unlimited)
//
// Returns:
//   - error: ErrInterpolantMismatch or ErrInterpolantBudget on violation
func (ps *ProgramSet) Link(policy CompactionPolicy, maxComponents int) error {
	for _, in := range ps.pixel.entry.inputs {
		matched := false
		for _, out := range ps.vertex.entry.outputs {
			if out.semantic == in.semantic && out.index == in.index {
				if out.typ != in.typ {
					return fmt.Errorf("%w: %s[%d] is %s in vertex stage, %s in pixel stage",
						ErrInterpolantMismatch, in.semantic, in.index, out.typ, in.typ)
				}
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("%w: pixel input %s[%d] has no vertex output", ErrInterpolantMismatch, in.semantic, in.index)
		}
	}

	if policy >= CompactMedium {
		ps.compactTexcoords()
	}

	if maxComponents > 0 {
		footprint := 0
		for _, out := range ps.vertex.entry.outputs {
			if out.semantic == SemanticPosition && out.index == 0 {
				continue
			}
			footprint += out.typ.Components()
		}
		if footprint > maxComponents {
			return fmt.Errorf("%w: %d components used, limit %d", ErrInterpolantBudget, footprint, maxComponents)
		}
	}
	return nil
}

// compactTexcoords densely re-indexes texture coordinate interpolants in both
// stages. The mapping is derived from the union of indices in use so both
// stages stay consistent and matched parameters keep identical names.
func (ps *ProgramSet) compactTexcoords() {
	used := make([]int, 0, 8)
	collect := func(list []*parameter) {
		for _, p := range list {
			if p.semantic == SemanticTexCoord && p.class == ClassInterpolant && !slices.Contains(used, p.index) {
				used = append(used, p.index)
			}
		}
	}
	collect(ps.vertex.entry.outputs)
	collect(ps.pixel.entry.inputs)
	slices.Sort(used)

	remap := make(map[int]int, len(used))
	for dense, old := range used {
		remap[old] = dense
	}
	apply := func(list []*parameter) {
		for _, p := range list {
			if p.semantic == SemanticTexCoord && p.class == ClassInterpolant {
				p.index = remap[p.index]
				p.name = varyingName(p.class, p.semantic, p.index)
			}
		}
	}
	apply(ps.vertex.entry.outputs)
	apply(ps.pixel.entry.inputs)
}

// autoUniformName derives the generated uniform identifier from an
// auto-constant tag and payload, e.g. ("light_diffuse_colour", 1) →
// "uLightDiffuseColour1". Payloads are always appended for indexed light and
// spotlight tags so per-light uniforms stay unique.
func autoUniformName(tag AutoConstant, data uint32) string {
	var sb strings.Builder
	sb.WriteByte('u')
	upper := true
	for _, r := range string(tag) {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	if data > 0 || strings.HasPrefix(string(tag), "light_") || tag == AutoSpotlightParams {
		fmt.Fprintf(&sb, "%d", data)
	}
	return sb.String()
}
