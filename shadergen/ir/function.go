package ir

import (
	"errors"
	"fmt"
	"slices"
)

// ErrResolveConflict is returned when a resolve call matches an existing
// parameter key but asks for an incompatible type.
var ErrResolveConflict = errors.New("ir: parameter resolve conflict")

// function is the implementation of the Function interface.
type function struct {
	name    string
	stage   Stage
	inputs  []*parameter
	outputs []*parameter
	locals  []*parameter
	atoms   []Atom
	sorted  bool
}

// Function is an ordered container of atoms plus its owned varying and local
// parameters. Each Program has exactly one entry Function (the stage main).
// Effect modules obtain parameters through the resolve protocol: a second
// resolve with an identical key returns the same Parameter, which is the
// mechanism that lets independent modules share values.
type Function interface {
	// Name retrieves the function name used in emitted source.
	//
	// Returns:
	//   - string: the function name
	Name() string

	// Stage retrieves the pipeline stage this function belongs to.
	//
	// Returns:
	//   - Stage: StageVertex or StagePixel
	Stage() Stage

	// ResolveInput returns the canonical input parameter for the given
	// semantic key, allocating it on first use. Vertex-stage inputs are
	// vertex attributes; pixel-stage inputs are interpolants.
	//
	// Parameters:
	//   - semantic: the varying semantic
	//   - index: the semantic index (e.g. texture coordinate set)
	//   - typ: the required GPU type
	//
	// Returns:
	//   - Parameter: the canonical parameter for the key
	//   - error: ErrResolveConflict if the key exists with a different type
	ResolveInput(semantic Semantic, index int, typ GpuType) (Parameter, error)

	// ResolveOutput returns the canonical output parameter for the given
	// semantic key, allocating it on first use. Vertex-stage outputs are
	// interpolants; pixel-stage outputs are render target writes.
	//
	// Parameters:
	//   - semantic: the varying semantic
	//   - index: the semantic index
	//   - typ: the required GPU type
	//
	// Returns:
	//   - Parameter: the canonical parameter for the key
	//   - error: ErrResolveConflict if the key exists with a different type
	ResolveOutput(semantic Semantic, index int, typ GpuType) (Parameter, error)

	// ResolveLocal returns the named function-scope temporary, allocating it
	// on first use. An empty name allocates a fresh uniquely-named local.
	//
	// Parameters:
	//   - name: the local's name, or "" to generate one
	//   - typ: the required GPU type
	//
	// Returns:
	//   - Parameter: the canonical local for the name
	//   - error: ErrResolveConflict if the name exists with a different type
	ResolveLocal(name string, typ GpuType) (Parameter, error)

	// AddAtom appends an atom to the function. Emission order is by
	// (execution group ascending, insertion order within group).
	//
	// Parameters:
	//   - a: the atom to append
	AddAtom(a Atom)

	// Atoms retrieves the function's atoms in emission order.
	//
	// Returns:
	//   - []Atom: atoms stable-sorted by execution group
	Atoms() []Atom

	// Inputs retrieves the input parameters in allocation order.
	//
	// Returns:
	//   - []Parameter: the function's inputs
	Inputs() []Parameter

	// Outputs retrieves the output parameters in allocation order.
	//
	// Returns:
	//   - []Parameter: the function's outputs
	Outputs() []Parameter

	// Locals retrieves the local parameters in allocation order.
	//
	// Returns:
	//   - []Parameter: the function's locals
	Locals() []Parameter
}

var _ Function = &function{}

func newFunction(name string, stage Stage) *function {
	return &function{name: name, stage: stage}
}

func (f *function) Name() string {
	return f.name
}

func (f *function) Stage() Stage {
	return f.stage
}

func (f *function) ResolveInput(semantic Semantic, index int, typ GpuType) (Parameter, error) {
	class := ClassVertexInput
	if f.stage == StagePixel {
		class = ClassInterpolant
	}
	return resolveVarying(&f.inputs, class, semantic, index, typ)
}

func (f *function) ResolveOutput(semantic Semantic, index int, typ GpuType) (Parameter, error) {
	class := ClassInterpolant
	if f.stage == StagePixel {
		class = ClassPixelOutput
	}
	return resolveVarying(&f.outputs, class, semantic, index, typ)
}

func (f *function) ResolveLocal(name string, typ GpuType) (Parameter, error) {
	if name == "" {
		name = fmt.Sprintf("l%s_%d", typ, len(f.locals))
	}
	for _, p := range f.locals {
		if p.name == name {
			if p.typ != typ {
				return nil, fmt.Errorf("%w: local %q is %s, requested %s", ErrResolveConflict, name, p.typ, typ)
			}
			return p, nil
		}
	}
	p := &parameter{name: name, typ: typ, semantic: SemanticUnknown, class: ClassLocal, binding: -1}
	f.locals = append(f.locals, p)
	return p, nil
}

func (f *function) AddAtom(a Atom) {
	f.atoms = append(f.atoms, a)
	f.sorted = false
}

func (f *function) Atoms() []Atom {
	if !f.sorted {
		slices.SortStableFunc(f.atoms, func(a, b Atom) int {
			return a.ExecutionGroup() - b.ExecutionGroup()
		})
		f.sorted = true
	}
	return f.atoms
}

func (f *function) Inputs() []Parameter {
	return asParameters(f.inputs)
}

func (f *function) Outputs() []Parameter {
	return asParameters(f.outputs)
}

func (f *function) Locals() []Parameter {
	return asParameters(f.locals)
}

// resolveVarying implements the get-or-create protocol shared by input and
// output resolution. The (semantic, index, class) triple is the key; a type
// mismatch on an existing key is a resolve conflict.
func resolveVarying(list *[]*parameter, class ContentClass, semantic Semantic, index int, typ GpuType) (Parameter, error) {
	for _, p := range *list {
		if p.semantic == semantic && p.index == index && p.class == class {
			if p.typ != typ {
				return nil, fmt.Errorf("%w: %s %s[%d] is %s, requested %s",
					ErrResolveConflict, class, semantic, index, p.typ, typ)
			}
			return p, nil
		}
	}
	p := &parameter{
		name:     varyingName(class, semantic, index),
		typ:      typ,
		semantic: semantic,
		index:    index,
		class:    class,
		binding:  -1,
	}
	*list = append(*list, p)
	return p, nil
}

func asParameters(in []*parameter) []Parameter {
	out := make([]Parameter, len(in))
	for i, p := range in {
		out[i] = p
	}
	return out
}
